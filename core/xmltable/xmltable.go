// Package xmltable loads custom mapping tables from XML and writes the
// built-in tables in the same format.
//
// A table document looks like:
//
//	<table name="fullwidth-tilde">
//	  <map from="〜" to="～"/>
//	  <map from-cp="U+200B" to=""/>
//	</table>
//
// from and to hold literal text. from-cp and to-cp hold space separated
// U+XXXX code points, for characters that are invisible or combining. An
// empty to deletes the character.
package xmltable

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/errors"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

var (
	rootExpr = xpath.MustCompile("/table")
	mapExpr  = xpath.MustCompile("/table/map")
)

// Tabular is implemented by stages backed by a single mapping table.
type Tabular interface {
	Table() *table.Transliterator
}

// Parse reads a table document. path is used in error messages only.
func Parse(data []byte, path string) (*table.Transliterator, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParse("XML table", path, err.Error())
	}
	root := xmlquery.QuerySelector(doc, rootExpr)
	if root == nil {
		return nil, errors.NewParse("XML table", path, "missing <table> root element")
	}
	name := strings.TrimSpace(root.SelectAttr("name"))
	if name == "" {
		return nil, errors.NewParse("XML table", path, "<table> needs a name attribute")
	}

	t := make(table.Table)
	for i, n := range xmlquery.QuerySelectorAll(doc, mapExpr) {
		from, err := side(n, "from")
		if err != nil {
			return nil, errors.NewParse("XML table", path, fmt.Sprintf("map %d: %v", i+1, err))
		}
		to, err := side(n, "to")
		if err != nil {
			return nil, errors.NewParse("XML table", path, fmt.Sprintf("map %d: %v", i+1, err))
		}
		if from == "" {
			return nil, errors.NewParse("XML table", path, fmt.Sprintf("map %d: empty from", i+1))
		}
		if segs := chars.Split(from); len(segs) != 1 {
			return nil, errors.NewParse("XML table", path,
				fmt.Sprintf("map %d: from %q is %d characters, want 1", i+1, from, len(segs)))
		}
		if _, dup := t[from]; dup {
			return nil, errors.NewParse("XML table", path, fmt.Sprintf("map %d: duplicate from %q", i+1, from))
		}
		t[from] = to
	}
	return table.New(name, t), nil
}

// Load reads the table document at path.
func Load(path string) (*table.Transliterator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return Parse(data, path)
}

// side reads the literal or code point form of one side of a mapping.
func side(n *xmlquery.Node, attr string) (string, error) {
	lit, hasLit := attrValue(n, attr)
	cps, hasCP := attrValue(n, attr+"-cp")
	switch {
	case hasLit && hasCP:
		return "", fmt.Errorf("both %s and %s-cp given", attr, attr)
	case hasCP:
		return parseCodePoints(cps)
	}
	return lit, nil
}

func attrValue(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseCodePoints(s string) (string, error) {
	var b strings.Builder
	for _, f := range strings.Fields(s) {
		hex := strings.TrimPrefix(strings.TrimPrefix(f, "U+"), "u+")
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || v > unicode.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
			return "", fmt.Errorf("bad code point %q", f)
		}
		b.WriteRune(rune(v))
	}
	return b.String(), nil
}

// CodePoints spells s as U+XXXX code points.
func CodePoints(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("U+%04X", r))
	}
	return strings.Join(parts, " ")
}

// plain reports whether s can be written as a literal attribute.
func plain(s string) bool {
	for _, r := range s {
		if !unicode.IsGraphic(r) || unicode.Is(unicode.Mn, r) || unicode.IsSpace(r) {
			return false
		}
		if r >= 0xFE00 && r <= 0xFE0F || r >= 0xE0100 && r <= 0xE01EF {
			return false
		}
	}
	return true
}

// Write prints t as a table document, entries in key order.
func Write(w io.Writer, t *table.Transliterator) error {
	doc := &xmlquery.Node{Type: xmlquery.DocumentNode}
	decl := &xmlquery.Node{Type: xmlquery.DeclarationNode, Data: "xml"}
	xmlquery.AddAttr(decl, "version", "1.0")
	xmlquery.AddChild(doc, decl)

	root := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "table"}
	xmlquery.AddAttr(root, "name", t.Name())
	xmlquery.AddChild(doc, root)

	for _, k := range t.Keys() {
		v, _ := t.Lookup(k)
		m := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "map"}
		if plain(k) {
			xmlquery.AddAttr(m, "from", k)
		} else {
			xmlquery.AddAttr(m, "from-cp", CodePoints(k))
		}
		if plain(v) {
			xmlquery.AddAttr(m, "to", v)
		} else {
			xmlquery.AddAttr(m, "to-cp", CodePoints(v))
		}
		xmlquery.AddChild(root, m)
	}

	if _, err := io.WriteString(w, doc.OutputXML(false)+"\n"); err != nil {
		return errors.NewIO("write", "", err)
	}
	return nil
}
