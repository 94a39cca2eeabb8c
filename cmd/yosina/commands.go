package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/transform"

	"github.com/FocuswithJustin/yosina/core/cache"
	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/pipeline"
	"github.com/FocuswithJustin/yosina/core/recipe"
	"github.com/FocuswithJustin/yosina/core/sqlite"
	"github.com/FocuswithJustin/yosina/core/translit"
	"github.com/FocuswithJustin/yosina/core/transliterators/ivssvs"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
	"github.com/FocuswithJustin/yosina/core/xmltable"
	"github.com/FocuswithJustin/yosina/internal/logging"
	"github.com/FocuswithJustin/yosina/internal/server"
)

// chainFlags selects a chain: a recipe file, a pipeline expression, or
// neither for the identity chain. Tables register custom stages.
type chainFlags struct {
	Recipe   string   `short:"r" help:"Recipe JSON file" type:"existingfile" xor:"source"`
	Pipeline string   `short:"p" help:"Pipeline expression, e.g. 'spaces | hyphens(precedence=ascii)'" xor:"source"`
	Table    []string `short:"t" help:"XML mapping table to register as a custom stage" type:"existingfile"`
}

func newChainCache() *cache.ChainCache {
	return cache.NewDefaultChainCache().OnBuild(func(source, fingerprint string, stages int) {
		logging.PipelineBuilt(source, fingerprint, stages)
	})
}

func loadTable(path string) (*table.Transliterator, error) {
	t, err := xmltable.Load(path)
	if err != nil {
		return nil, err
	}
	logging.TableLoaded(t.Name(), t.Len(), "source", path)
	return t, nil
}

// loadTables reads the custom tables. Table names become stage names.
func loadTables(paths []string) (pipeline.Registry, []string, error) {
	if len(paths) == 0 {
		return nil, nil, nil
	}
	reg := make(pipeline.Registry, len(paths))
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		t, err := loadTable(p)
		if err != nil {
			return nil, nil, err
		}
		if _, err := translit.ParseKind(t.Name()); err == nil {
			return nil, nil, errors.NewConflict("table", fmt.Sprintf("%s: name %q shadows a built-in stage", p, t.Name()))
		}
		if _, dup := reg[t.Name()]; dup {
			return nil, nil, errors.NewConflict("table", fmt.Sprintf("%s: duplicate table name %q", p, t.Name()))
		}
		reg[t.Name()] = t
		names = append(names, t.Name())
	}
	return reg, names, nil
}

// resolve returns the chain the flags select and its fingerprint. With
// tables but no recipe or pipeline, the tables run in the order given.
func (f *chainFlags) resolve(chains *cache.ChainCache) (*translit.Chain, string, error) {
	reg, names, err := loadTables(f.Table)
	if err != nil {
		return nil, "", err
	}

	if f.Recipe != "" {
		if len(names) > 0 {
			return nil, "", errors.NewConflict("flags", "--table applies to --pipeline, not --recipe")
		}
		data, err := os.ReadFile(f.Recipe)
		if err != nil {
			return nil, "", errors.NewIO("read", f.Recipe, err)
		}
		r, err := recipe.Parse(data)
		if err != nil {
			return nil, "", err
		}
		return chains.Recipe(r)
	}

	expr := f.Pipeline
	if expr == "" {
		expr = strings.Join(names, " | ")
	}
	return chains.Pipeline(expr, reg)
}

// TransliterateCmd streams a file or stdin through a chain.
type TransliterateCmd struct {
	chainFlags
	Input  string `arg:"" optional:"" help:"Input file (default: stdin)" type:"existingfile"`
	Output string `short:"o" help:"Output file (default: stdout)" type:"path"`
}

func (c *TransliterateCmd) Run(rc *runContext) error {
	chain, fp, err := c.resolve(newChainCache())
	if err != nil {
		return err
	}

	in := rc.stdin
	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return errors.NewIO("open", c.Input, err)
		}
		defer f.Close()
		in = f
	}

	out := rc.stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return errors.NewIO("create", c.Output, err)
		}
		defer f.Close()
		out = f
	}

	start := time.Now()
	counted := &countingReader{r: in}
	n, err := io.Copy(out, transform.NewReader(counted, chain.Transformer()))
	if err != nil {
		return errors.Wrap(err, "transliterate")
	}
	logging.Transliterated(rc.ctx, fp, int(counted.n), int(n), time.Since(start))
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// CompileCmd prints the normalized stage list and fingerprint.
type CompileCmd struct {
	chainFlags
	JSON bool `help:"Print as JSON"`
}

type compileResult struct {
	Pipeline    string   `json:"pipeline"`
	Stages      []string `json:"stages"`
	Fingerprint string   `json:"fingerprint"`
}

func (c *CompileCmd) Run(rc *runContext) error {
	chain, fp, err := c.resolve(newChainCache())
	if err != nil {
		return err
	}
	cfgs := chain.Configs()
	res := compileResult{
		Pipeline:    pipeline.Format(cfgs),
		Stages:      make([]string, 0, len(cfgs)),
		Fingerprint: fp,
	}
	for _, cfg := range cfgs {
		res.Stages = append(res.Stages, cfg.String())
	}

	if c.JSON {
		enc := json.NewEncoder(rc.stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}
	fmt.Fprintf(rc.stdout, "%s\n", res.Pipeline)
	fmt.Fprintf(rc.stdout, "stages: %d\n", len(res.Stages))
	fmt.Fprintf(rc.stdout, "fingerprint: %s\n", res.Fingerprint)
	return nil
}

// StagesCmd lists the stage names a pipeline may use.
type StagesCmd struct{}

func (c *StagesCmd) Run(rc *runContext) error {
	for _, name := range translit.KindNames() {
		if name == translit.KindCustom.String() {
			continue
		}
		fmt.Fprintln(rc.stdout, name)
	}
	return nil
}

// TableExportCmd writes a table-driven stage as an XML mapping table.
type TableExportCmd struct {
	Stage  string `arg:"" help:"Stage name, optionally with options, e.g. 'hira-kata(mode=kata-to-hira)'"`
	Output string `short:"o" help:"Output file (default: stdout)" type:"path"`
}

func (c *TableExportCmd) Run(rc *runContext) error {
	cfgs, err := pipeline.Parse(c.Stage, nil)
	if err != nil {
		return err
	}
	if len(cfgs) != 1 {
		return errors.NewValidation("stage", "exactly one stage is required")
	}
	stage, err := translit.Build(cfgs[0])
	if err != nil {
		return err
	}
	tab, ok := stage.(xmltable.Tabular)
	if !ok {
		return errors.NewUnsupported("table export", fmt.Sprintf("stage %s is not table-driven", cfgs[0]))
	}

	out := rc.stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return errors.NewIO("create", c.Output, err)
		}
		defer f.Close()
		out = f
	}
	return xmltable.Write(out, tab.Table())
}

// TableCheckCmd parses XML tables and reports their sizes.
type TableCheckCmd struct {
	Paths []string `arg:"" help:"XML mapping tables" type:"existingfile"`
}

func (c *TableCheckCmd) Run(rc *runContext) error {
	for _, p := range c.Paths {
		t, err := loadTable(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(rc.stdout, "%s: %s (%d entries)\n", p, t.Name(), t.Len())
	}
	return nil
}

// IVSExportCmd writes the embedded IVS/SVS table, or a JSON record file,
// to SQLite.
type IVSExportCmd struct {
	DB     string `required:"" help:"SQLite database path" type:"path"`
	Source string `help:"JSON record file (default: the embedded table)" type:"existingfile"`
}

func (c *IVSExportCmd) records() ([]ivssvs.Record, error) {
	if c.Source == "" {
		tbl, err := ivssvs.Load()
		if err != nil {
			return nil, err
		}
		return tbl.Records(), nil
	}
	data, err := os.ReadFile(c.Source)
	if err != nil {
		return nil, errors.NewIO("read", c.Source, err)
	}
	var records []ivssvs.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewParse("json", c.Source, err.Error())
	}
	return records, nil
}

func (c *IVSExportCmd) Run(rc *runContext) error {
	records, err := c.records()
	if err != nil {
		return err
	}
	db, err := sqlite.Open(rc.ctx, c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := sqlite.ExportIVS(rc.ctx, db, records)
	if err != nil {
		return err
	}
	logging.TableLoaded(sqlite.TableName, n, "op", "export", "db", c.DB, "driver", sqlite.DriverType())
	fmt.Fprintf(rc.stdout, "Exported %d records to %s (%s driver)\n", n, c.DB, sqlite.DriverType())
	return nil
}

// IVSLookupCmd prints the records matching a character or sequence.
type IVSLookupCmd struct {
	DB    string `required:"" help:"SQLite database path" type:"existingfile"`
	Query string `arg:"" help:"Base character, IVS or SVS to look up"`
	JSON  bool   `help:"Print as JSON"`
}

func (c *IVSLookupCmd) Run(rc *runContext) error {
	db, err := sqlite.OpenReadOnly(rc.ctx, c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := sqlite.LookupIVS(rc.ctx, db, c.Query)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(rc.stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(records)
	}
	for _, r := range records {
		fmt.Fprintf(rc.stdout, "ivs=%s svs=%s base90=%s base2004=%s\n",
			xmltable.CodePoints(r.IVS), orDash(xmltable.CodePoints(r.SVS)),
			orDash(xmltable.CodePoints(r.Base90)), orDash(xmltable.CodePoints(r.Base2004)))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ServeCmd starts the HTTP/WebSocket server.
type ServeCmd struct {
	Addr           string   `help:"Listen address" default:":8080"`
	RateLimit      int      `help:"Requests per minute per client IP (0 = disabled)" default:"0"`
	RateBurst      int      `help:"Rate limit burst size" default:"10"`
	AllowedOrigins []string `help:"CORS and WebSocket allowed origins" name:"allowed-origin"`
	CacheSize      int      `help:"Compiled chains kept in memory" default:"64"`
	Table          []string `short:"t" help:"XML mapping table to register as a custom stage" type:"existingfile"`
}

func (c *ServeCmd) Run(rc *runContext) error {
	reg, _, err := loadTables(c.Table)
	if err != nil {
		return err
	}
	cfg := server.DefaultConfig()
	cfg.Addr = c.Addr
	cfg.Version = version
	cfg.RateLimitRequests = c.RateLimit
	cfg.RateLimitBurst = c.RateBurst
	cfg.AllowedOrigins = c.AllowedOrigins
	cfg.WebSocket.AllowedOrigins = c.AllowedOrigins
	cfg.CacheSize = c.CacheSize
	cfg.Custom = reg
	return server.New(cfg).ListenAndServe(rc.ctx)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(rc *runContext) error {
	fmt.Fprintf(rc.stdout, "yosina version %s (sqlite: %s)\n", version, sqlite.DriverType())
	return nil
}
