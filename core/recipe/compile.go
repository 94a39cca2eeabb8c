package recipe

import (
	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/translit"
	"github.com/FocuswithJustin/yosina/core/transliterators/circled"
	"github.com/FocuswithJustin/yosina/core/transliterators/composition"
	"github.com/FocuswithJustin/yosina/core/transliterators/hirakata"
	"github.com/FocuswithJustin/yosina/core/transliterators/hyphens"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
	"github.com/FocuswithJustin/yosina/core/transliterators/jisx0201"
	"github.com/FocuswithJustin/yosina/core/transliterators/prolonged"
)

// Component names the recipe in conflict errors.
const Component = "recipe"

// builder keeps two lists. The head runs first and holds stages that
// normalize input for everything else; the tail holds the rest. Every
// insert is a no-op when a stage of the same kind is already in the
// target list, unless force is set, in which case it replaces it in place.
type builder struct {
	head []translit.Config
	tail []translit.Config
}

func indexOf(list []translit.Config, c translit.Config) int {
	for i, e := range list {
		if e.SameKind(c) {
			return i
		}
	}
	return -1
}

func (b *builder) insertHead(c translit.Config, force bool) {
	if i := indexOf(b.head, c); i >= 0 {
		if force {
			b.head[i] = c
		}
		return
	}
	b.head = append([]translit.Config{c}, b.head...)
}

// insertMiddle puts c at the front of the tail.
func (b *builder) insertMiddle(c translit.Config, force bool) {
	if i := indexOf(b.tail, c); i >= 0 {
		if force {
			b.tail[i] = c
		}
		return
	}
	b.tail = append([]translit.Config{c}, b.tail...)
}

func (b *builder) insertTail(c translit.Config, force bool) {
	if i := indexOf(b.tail, c); i >= 0 {
		if force {
			b.tail[i] = c
		}
		return
	}
	b.tail = append(b.tail, c)
}

func (b *builder) build() []translit.Config {
	out := make([]translit.Config, 0, len(b.head)+len(b.tail))
	out = append(out, b.head...)
	return append(out, b.tail...)
}

func (r Recipe) validate() error {
	if r.ToFullwidth.Enabled() && r.ToHalfwidth.Enabled() {
		return errors.NewConflict(Component, "toFullwidth and toHalfwidth are mutually exclusive")
	}
	if err := r.ToFullwidth.check("toFullwidth", U005cAsYenSign); err != nil {
		return err
	}
	if err := r.ToHalfwidth.check("toHalfwidth", HankakuKana); err != nil {
		return err
	}
	if err := r.RemoveIVSSVS.check("removeIvsSvs", DropAllSelectors); err != nil {
		return err
	}
	if err := r.ReplaceCircledOrSquaredCharacters.check("replaceCircledOrSquaredCharacters", ExcludeEmojis); err != nil {
		return err
	}
	if r.HiraKata != "" {
		if _, err := hirakata.ParseMode(string(r.HiraKata)); err != nil {
			return err
		}
	}
	if r.Charset != "" {
		if _, err := ivssvs.ParseCharset(string(r.Charset)); err != nil {
			return err
		}
	}
	return nil
}

func (r Recipe) charset() ivssvs.Charset {
	if r.Charset == "" {
		return ivssvs.UniJIS2004
	}
	cs, _ := ivssvs.ParseCharset(string(r.Charset))
	return cs
}

// Compile returns the stage configurations for r. Options are applied in
// a fixed order; stages that must see normalized input are inserted at
// the head, so the resulting order is not the application order.
func (r Recipe) Compile() ([]translit.Config, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	b := &builder{}
	r.applyKanjiOldNew(b)
	r.applySuspiciousHyphens(b)
	r.applyCircledOrSquared(b)
	r.applyCombined(b)
	r.applyIdeographicAnnotations(b)
	r.applyRadicals(b)
	r.applySpaces(b)
	r.applyHyphens(b)
	r.applyMathematicalAlphanumerics(b)
	r.applyRomanNumerals(b)
	r.applyCombineDecomposed(b)
	r.applyToFullwidth(b)
	r.applyHiraKata(b)
	r.applyIterationMarks(b)
	r.applyToHalfwidth(b)
	r.applyRemoveIVSSVS(b)
	return b.build(), nil
}

// Build compiles r and resolves the result into a chain.
func (r Recipe) Build() (*translit.Chain, error) {
	configs, err := r.Compile()
	if err != nil {
		return nil, err
	}
	return translit.NewChain(configs...)
}

// selectors brackets the pipeline with a variant-normalizing stage at the
// head and a selector-removing stage at the tail.
func (r Recipe) selectors(b *builder, dropAll bool) {
	cs := r.charset()
	b.insertHead(translit.IVSSVSBase(ivssvs.Options{Mode: ivssvs.ModeIVSOrSVS, Charset: cs}), true)
	b.insertTail(translit.IVSSVSBase(ivssvs.Options{
		Mode:                    ivssvs.ModeBase,
		Charset:                 cs,
		DropSelectorsAltogether: dropAll,
	}), true)
}

func (r Recipe) applyKanjiOldNew(b *builder) {
	if r.KanjiOldNew {
		r.selectors(b, false)
		b.insertMiddle(translit.KanjiOldNew(), false)
	}
}

func (r Recipe) applySuspiciousHyphens(b *builder) {
	if r.ReplaceSuspiciousHyphensToProlongedSoundMarks {
		b.insertMiddle(translit.ProlongedSoundMarks(prolonged.Options{
			ReplaceProlongedMarksFollowingAlnums: true,
		}), false)
	}
}

func (r Recipe) applyCircledOrSquared(b *builder) {
	t := r.ReplaceCircledOrSquaredCharacters
	if t.Enabled() {
		b.insertMiddle(translit.CircledOrSquared(circled.Options{IncludeEmojis: t != ExcludeEmojis}), false)
	}
}

func (r Recipe) applyCombined(b *builder) {
	if r.ReplaceCombinedCharacters {
		b.insertMiddle(translit.Combined(), false)
	}
}

func (r Recipe) applyIdeographicAnnotations(b *builder) {
	if r.ReplaceIdeographicAnnotations {
		b.insertMiddle(translit.IdeographicAnnotations(), false)
	}
}

func (r Recipe) applyRadicals(b *builder) {
	if r.ReplaceRadicals {
		b.insertMiddle(translit.Radicals(), false)
	}
}

func (r Recipe) applySpaces(b *builder) {
	if r.ReplaceSpaces {
		b.insertMiddle(translit.Spaces(), false)
	}
}

func (r Recipe) applyHyphens(b *builder) {
	if !r.ReplaceHyphens.Enabled {
		return
	}
	p := r.ReplaceHyphens.Precedence
	if len(p) == 0 {
		p = DefaultHyphensPrecedence
	}
	b.insertMiddle(translit.Hyphens(hyphens.Options{Precedence: append([]hyphens.Precedence(nil), p...)}), false)
}

func (r Recipe) applyMathematicalAlphanumerics(b *builder) {
	if r.ReplaceMathematicalAlphanumerics {
		b.insertMiddle(translit.MathematicalAlphanumerics(), false)
	}
}

func (r Recipe) applyRomanNumerals(b *builder) {
	if r.ReplaceRomanNumerals {
		b.insertMiddle(translit.RomanNumerals(), false)
	}
}

func (r Recipe) applyCombineDecomposed(b *builder) {
	if r.CombineDecomposedHiraganasAndKatakanas {
		b.insertHead(translit.HiraKataComposition(composition.Options{ComposeNonCombiningMarks: true}), true)
	}
}

func (r Recipe) applyToFullwidth(b *builder) {
	if !r.ToFullwidth.Enabled() {
		return
	}
	o := jisx0201.DefaultOptions()
	o.FullwidthToHalfwidth = false
	o.U005cAsYenSign = jisx0201.Bool(r.ToFullwidth == U005cAsYenSign)
	b.insertTail(translit.JISX0201AndAlike(o), false)
}

func (r Recipe) applyHiraKata(b *builder) {
	if r.HiraKata != "" {
		m, _ := hirakata.ParseMode(string(r.HiraKata))
		b.insertMiddle(translit.HiraKata(hirakata.Options{Mode: m}), false)
	}
}

func (r Recipe) applyIterationMarks(b *builder) {
	if r.ReplaceJapaneseIterationMarks {
		b.insertHead(translit.HiraKataComposition(composition.Options{ComposeNonCombiningMarks: true}), true)
		b.insertMiddle(translit.JapaneseIterationMarks(), false)
	}
}

func (r Recipe) applyToHalfwidth(b *builder) {
	if !r.ToHalfwidth.Enabled() {
		return
	}
	o := jisx0201.DefaultOptions()
	o.FullwidthToHalfwidth = true
	o.ConvertGL = true
	o.ConvertGR = r.ToHalfwidth == HankakuKana
	b.insertTail(translit.JISX0201AndAlike(o), false)
}

func (r Recipe) applyRemoveIVSSVS(b *builder) {
	if r.RemoveIVSSVS.Enabled() {
		r.selectors(b, r.RemoveIVSSVS == DropAllSelectors)
	}
}
