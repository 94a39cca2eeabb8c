// Command yosina transliterates Japanese text through configurable
// stage chains.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/yosina/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for yosina.
type CLI struct {
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json"`

	Transliterate TransliterateCmd `cmd:"" help:"Transliterate a file or stdin"`
	Compile       CompileCmd       `cmd:"" help:"Print the stage list a recipe or pipeline compiles to"`
	Stages        StagesCmd        `cmd:"" help:"List the built-in stage names"`
	Table         TableGroup       `cmd:"" help:"Mapping table operations"`
	IVS           IVSGroup         `cmd:"" name:"ivs" help:"IVS/SVS table operations"`
	Serve         ServeCmd         `cmd:"" help:"Start the HTTP/WebSocket server"`
	Version       VersionCmd       `cmd:"" help:"Print version information"`
}

// TableGroup contains mapping table operations.
type TableGroup struct {
	Export TableExportCmd `cmd:"" help:"Write a built-in stage's table as XML"`
	Check  TableCheckCmd  `cmd:"" help:"Validate XML mapping tables"`
}

// IVSGroup contains IVS/SVS database operations.
type IVSGroup struct {
	Export IVSExportCmd `cmd:"" help:"Write the IVS/SVS table to a SQLite database"`
	Lookup IVSLookupCmd `cmd:"" help:"Look up variation sequences in a SQLite database"`
}

// runContext carries the process streams into command Run methods.
type runContext struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("yosina"),
		kong.Description("Yosina - Japanese text transliteration"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, os.Stderr),
		kong.Bind(&runContext{ctx: ctx, stdin: stdin, stdout: stdout}),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)

	return kctx.Run()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "yosina: %v\n", err)
		os.Exit(1)
	}
}
