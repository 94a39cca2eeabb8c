// Package pipeline parses and prints textual stage lists such as
//
//	spaces | hyphens(precedence=ascii+jisx0201) | jisx0201-and-alike(convert-gr=false)
//
// Stage names are the kebab-case kind names. Option names are matched
// ignoring case, hyphens and underscores. A list value joins its items
// with "+". Stages registered as custom stages are referenced by name.
package pipeline

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/translit"
)

// Registry maps names to custom stages.
type Registry map[string]translit.Transliterator

// Parse turns expr into stage configurations. An empty expression yields
// no stages.
func Parse(expr string, custom Registry) ([]translit.Config, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	ast, err := pipelineParser.ParseString("", expr)
	if err != nil {
		return nil, errors.NewParse("pipeline", "", err.Error())
	}

	cfgs := make([]translit.Config, 0, len(ast.Stages))
	for _, st := range ast.Stages {
		cfg, err := st.config(custom)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %q at column %d", st.Name, st.Pos.Column)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func (s *stageAST) config(custom Registry) (translit.Config, error) {
	kind, err := translit.ParseKind(s.Name)
	if err != nil || kind == translit.KindCustom {
		t, ok := custom[s.Name]
		if !ok {
			if err == nil {
				err = errors.NewValidation("stage", "custom stages are referenced by their registered name")
			}
			return translit.Config{}, err
		}
		if len(s.Args) > 0 {
			return translit.Config{}, errors.NewValidation(s.Name, "custom stages take no options")
		}
		return translit.Custom(s.Name, t), nil
	}

	cfg := translit.Config{Kind: kind}
	if len(s.Args) == 0 {
		return cfg, nil
	}
	st, ok := stages[kind]
	if !ok {
		return cfg, errors.NewValidation(s.Name, "stage takes no options")
	}
	st.init(&cfg)

	for _, a := range s.Args {
		opt, ok := st.lookup(a.Key)
		if !ok {
			return cfg, errors.NewValidation(s.Name, fmt.Sprintf("unknown option %q", a.Key))
		}
		if err := opt.set(&cfg, a.Values); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (st stage) lookup(name string) (option, bool) {
	k := key(name)
	for _, o := range st.options {
		if key(o.name) == k {
			return o, true
		}
	}
	return option{}, false
}

// Format prints cfgs in the syntax Parse accepts. Options are printed in
// a fixed order, so equal configurations print equally.
func Format(cfgs []translit.Config) string {
	parts := make([]string, len(cfgs))
	for i, c := range cfgs {
		parts[i] = formatStage(c)
	}
	return strings.Join(parts, " | ")
}

func formatStage(c translit.Config) string {
	if c.Kind == translit.KindCustom {
		return c.CustomName
	}
	name := c.Kind.String()
	st, ok := stages[c.Kind]
	if !ok || !hasOptions(c) {
		return name
	}
	var args []string
	for _, o := range st.options {
		if v, ok := o.get(c); ok {
			args = append(args, o.name+"="+v)
		}
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

// Fingerprint identifies the pipeline cfgs describe.
func Fingerprint(cfgs []translit.Config) string {
	sum := blake3.Sum256([]byte("pipeline:" + Format(cfgs)))
	return hex.EncodeToString(sum[:16])
}

// Build parses expr and resolves it into a chain.
func Build(expr string, custom Registry) (*translit.Chain, error) {
	cfgs, err := Parse(expr, custom)
	if err != nil {
		return nil, err
	}
	return translit.NewChain(cfgs...)
}
