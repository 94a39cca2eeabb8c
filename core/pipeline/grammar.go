package pipeline

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Examples:
//
//	spaces | hyphens(precedence=jisx0208_90_windows+jisx0201)
//	ivs-svs-base(mode=ivs-or-svs, charset=unijis_2004) | kanji-old-new | ivs-svs-base(mode=base)
//
//nolint:govet // participle grammar tags are not standard struct tags
type pipelineAST struct {
	Stages []*stageAST `@@ ( "|" @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type stageAST struct {
	Pos  lexer.Position
	Name string    `@Ident`
	Args []*argAST `( "(" ( @@ ( "," @@ )* )? ")" )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type argAST struct {
	Key    string   `@Ident "="`
	Values []string `( @Ident | @String ) ( "+" ( @Ident | @String ) )*`
}

var pipelineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[A-Za-z0-9_][A-Za-z0-9_.\-]*`},
	{Name: "Punct", Pattern: `[|(),=+]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var pipelineParser = participle.MustBuild[pipelineAST](
	participle.Lexer(pipelineLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace"),
)
