// Package kana holds the shared hiragana/katakana table and the lookups
// derived from it.
package kana

import "sync"

// Forms holds the plain, voiced and semi-voiced forms of one kana. Empty
// strings mean the form does not exist.
type Forms struct {
	Base       string
	Voiced     string
	SemiVoiced string
}

// Entry is one row of the gojuon table.
type Entry struct {
	Hiragana  *Forms
	Katakana  Forms
	Halfwidth string
}

// SmallEntry is one row of the small kana table.
type SmallEntry struct {
	Hiragana  string
	Katakana  string
	Halfwidth string
}

func row(hira, kata [3]string, half string) Entry {
	return Entry{
		Hiragana:  &Forms{Base: hira[0], Voiced: hira[1], SemiVoiced: hira[2]},
		Katakana:  Forms{Base: kata[0], Voiced: kata[1], SemiVoiced: kata[2]},
		Halfwidth: half,
	}
}

// Table is the gojuon table in row order.
var Table = []Entry{
	row([3]string{"あ", "", ""}, [3]string{"ア", "", ""}, "ｱ"),
	row([3]string{"い", "", ""}, [3]string{"イ", "", ""}, "ｲ"),
	row([3]string{"う", "ゔ", ""}, [3]string{"ウ", "ヴ", ""}, "ｳ"),
	row([3]string{"え", "", ""}, [3]string{"エ", "", ""}, "ｴ"),
	row([3]string{"お", "", ""}, [3]string{"オ", "", ""}, "ｵ"),

	row([3]string{"か", "が", ""}, [3]string{"カ", "ガ", ""}, "ｶ"),
	row([3]string{"き", "ぎ", ""}, [3]string{"キ", "ギ", ""}, "ｷ"),
	row([3]string{"く", "ぐ", ""}, [3]string{"ク", "グ", ""}, "ｸ"),
	row([3]string{"け", "げ", ""}, [3]string{"ケ", "ゲ", ""}, "ｹ"),
	row([3]string{"こ", "ご", ""}, [3]string{"コ", "ゴ", ""}, "ｺ"),

	row([3]string{"さ", "ざ", ""}, [3]string{"サ", "ザ", ""}, "ｻ"),
	row([3]string{"し", "じ", ""}, [3]string{"シ", "ジ", ""}, "ｼ"),
	row([3]string{"す", "ず", ""}, [3]string{"ス", "ズ", ""}, "ｽ"),
	row([3]string{"せ", "ぜ", ""}, [3]string{"セ", "ゼ", ""}, "ｾ"),
	row([3]string{"そ", "ぞ", ""}, [3]string{"ソ", "ゾ", ""}, "ｿ"),

	row([3]string{"た", "だ", ""}, [3]string{"タ", "ダ", ""}, "ﾀ"),
	row([3]string{"ち", "ぢ", ""}, [3]string{"チ", "ヂ", ""}, "ﾁ"),
	row([3]string{"つ", "づ", ""}, [3]string{"ツ", "ヅ", ""}, "ﾂ"),
	row([3]string{"て", "で", ""}, [3]string{"テ", "デ", ""}, "ﾃ"),
	row([3]string{"と", "ど", ""}, [3]string{"ト", "ド", ""}, "ﾄ"),

	row([3]string{"な", "", ""}, [3]string{"ナ", "", ""}, "ﾅ"),
	row([3]string{"に", "", ""}, [3]string{"ニ", "", ""}, "ﾆ"),
	row([3]string{"ぬ", "", ""}, [3]string{"ヌ", "", ""}, "ﾇ"),
	row([3]string{"ね", "", ""}, [3]string{"ネ", "", ""}, "ﾈ"),
	row([3]string{"の", "", ""}, [3]string{"ノ", "", ""}, "ﾉ"),

	row([3]string{"は", "ば", "ぱ"}, [3]string{"ハ", "バ", "パ"}, "ﾊ"),
	row([3]string{"ひ", "び", "ぴ"}, [3]string{"ヒ", "ビ", "ピ"}, "ﾋ"),
	row([3]string{"ふ", "ぶ", "ぷ"}, [3]string{"フ", "ブ", "プ"}, "ﾌ"),
	row([3]string{"へ", "べ", "ぺ"}, [3]string{"ヘ", "ベ", "ペ"}, "ﾍ"),
	row([3]string{"ほ", "ぼ", "ぽ"}, [3]string{"ホ", "ボ", "ポ"}, "ﾎ"),

	row([3]string{"ま", "", ""}, [3]string{"マ", "", ""}, "ﾏ"),
	row([3]string{"み", "", ""}, [3]string{"ミ", "", ""}, "ﾐ"),
	row([3]string{"む", "", ""}, [3]string{"ム", "", ""}, "ﾑ"),
	row([3]string{"め", "", ""}, [3]string{"メ", "", ""}, "ﾒ"),
	row([3]string{"も", "", ""}, [3]string{"モ", "", ""}, "ﾓ"),

	row([3]string{"や", "", ""}, [3]string{"ヤ", "", ""}, "ﾔ"),
	row([3]string{"ゆ", "", ""}, [3]string{"ユ", "", ""}, "ﾕ"),
	row([3]string{"よ", "", ""}, [3]string{"ヨ", "", ""}, "ﾖ"),

	row([3]string{"ら", "", ""}, [3]string{"ラ", "", ""}, "ﾗ"),
	row([3]string{"り", "", ""}, [3]string{"リ", "", ""}, "ﾘ"),
	row([3]string{"る", "", ""}, [3]string{"ル", "", ""}, "ﾙ"),
	row([3]string{"れ", "", ""}, [3]string{"レ", "", ""}, "ﾚ"),
	row([3]string{"ろ", "", ""}, [3]string{"ロ", "", ""}, "ﾛ"),

	// ゐ and ゑ have no JIS X 0201 form.
	row([3]string{"わ", "", ""}, [3]string{"ワ", "ヷ", ""}, "ﾜ"),
	row([3]string{"ゐ", "", ""}, [3]string{"ヰ", "ヸ", ""}, ""),
	row([3]string{"ゑ", "", ""}, [3]string{"ヱ", "ヹ", ""}, ""),
	row([3]string{"を", "", ""}, [3]string{"ヲ", "ヺ", ""}, "ｦ"),
	row([3]string{"ん", "", ""}, [3]string{"ン", "", ""}, "ﾝ"),
}

// SmallTable lists the small kana.
var SmallTable = []SmallEntry{
	{"ぁ", "ァ", "ｧ"},
	{"ぃ", "ィ", "ｨ"},
	{"ぅ", "ゥ", "ｩ"},
	{"ぇ", "ェ", "ｪ"},
	{"ぉ", "ォ", "ｫ"},
	{"っ", "ッ", "ｯ"},
	{"ゃ", "ャ", "ｬ"},
	{"ゅ", "ュ", "ｭ"},
	{"ょ", "ョ", "ｮ"},
	{"ゎ", "ヮ", ""},
	{"ゕ", "ヵ", ""},
	{"ゖ", "ヶ", ""},
}

// Voicing marks.
const (
	CombiningVoicedMark           = '\u3099'
	CombiningSemiVoicedMark       = '\u309a'
	VoicedMark                    = '\u309b'
	SemiVoicedMark                = '\u309c'
	HalfwidthVoicedMark           = '\uff9e'
	HalfwidthSemiVoicedMark       = '\uff9f'
	HalfwidthVoicedMarkString     = "\uff9e"
	HalfwidthSemiVoicedMarkString = "\uff9f"
)

var (
	voicedOnce sync.Once
	voiced     map[rune]rune
	semiVoiced map[rune]rune
)

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func buildVoicing() {
	voiced = make(map[rune]rune)
	semiVoiced = make(map[rune]rune)
	add := func(f Forms) {
		if f.Base == "" {
			return
		}
		b := firstRune(f.Base)
		if f.Voiced != "" {
			voiced[b] = firstRune(f.Voiced)
		}
		if f.SemiVoiced != "" {
			semiVoiced[b] = firstRune(f.SemiVoiced)
		}
	}
	for _, e := range Table {
		if e.Hiragana != nil {
			add(*e.Hiragana)
		}
		add(e.Katakana)
	}
	// Iteration marks take a voiced form as well.
	voiced['ゝ'] = 'ゞ'
	voiced['ヽ'] = 'ヾ'
	voiced['〱'] = '〲'
	voiced['〳'] = '〴'
}

// VoicedForms maps a base scalar to its voiced form, iteration marks
// included. The returned map is shared and must not be modified.
func VoicedForms() map[rune]rune {
	voicedOnce.Do(buildVoicing)
	return voiced
}

// SemiVoicedForms maps a base scalar to its semi-voiced form. The
// returned map is shared and must not be modified.
func SemiVoicedForms() map[rune]rune {
	voicedOnce.Do(buildVoicing)
	return semiVoiced
}

var (
	grOnce            sync.Once
	grTable           map[string]string
	voicedHalfwidth   map[string]string
	hiraganaHalfwidth map[string]string
)

func buildGR() {
	grTable = map[string]string{
		"。": "｡",
		"「": "｢",
		"」": "｣",
		"、": "､",
		"・": "･",
		"ー": "ｰ",
		"゛": "ﾞ",
		"゜": "ﾟ",
	}
	voicedHalfwidth = make(map[string]string)
	hiraganaHalfwidth = make(map[string]string)

	for _, e := range Table {
		if e.Halfwidth == "" {
			continue
		}
		grTable[e.Katakana.Base] = e.Halfwidth
		if e.Katakana.Voiced != "" {
			voicedHalfwidth[e.Katakana.Voiced] = e.Halfwidth + HalfwidthVoicedMarkString
		}
		if e.Katakana.SemiVoiced != "" {
			voicedHalfwidth[e.Katakana.SemiVoiced] = e.Halfwidth + HalfwidthSemiVoicedMarkString
		}
		if h := e.Hiragana; h != nil {
			hiraganaHalfwidth[h.Base] = e.Halfwidth
			if h.Voiced != "" {
				hiraganaHalfwidth[h.Voiced] = e.Halfwidth + HalfwidthVoicedMarkString
			}
			if h.SemiVoiced != "" {
				hiraganaHalfwidth[h.SemiVoiced] = e.Halfwidth + HalfwidthSemiVoicedMarkString
			}
		}
	}
	for _, e := range SmallTable {
		if e.Halfwidth == "" {
			continue
		}
		grTable[e.Katakana] = e.Halfwidth
		hiraganaHalfwidth[e.Hiragana] = e.Halfwidth
	}
}

// HalfwidthKatakana maps full-width katakana and kana punctuation to their
// JIS X 0201 forms. Shared, read-only.
func HalfwidthKatakana() map[string]string {
	grOnce.Do(buildGR)
	return grTable
}

// HalfwidthVoicedKatakana maps voiced and semi-voiced katakana to a
// half-width base followed by a half-width mark. Shared, read-only.
func HalfwidthVoicedKatakana() map[string]string {
	grOnce.Do(buildGR)
	return voicedHalfwidth
}

// HalfwidthHiragana maps hiragana to half-width katakana, voiced forms
// included. Shared, read-only.
func HalfwidthHiragana() map[string]string {
	grOnce.Do(buildGR)
	return hiraganaHalfwidth
}
