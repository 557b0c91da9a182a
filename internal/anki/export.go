package anki

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tsangkit/cjdict/internal/cangjie"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// RenderCodes joins one character's codes with "/", either as Latin
// letters ("a/ab") or as key glyphs ("日/日月").
func RenderCodes(codes []string, glyphs bool) string {
	if !glyphs {
		return strings.Join(codes, "/")
	}
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = cangjie.Shapes(c)
	}
	return strings.Join(out, "/")
}

// TextCodes renders the table's codes for every Han character of text,
// space joined. Characters missing from the table contribute nothing, so
// HTML markup or Latin text around the characters is harmless.
func TextCodes(text string, t *cangjie.Table, glyphs bool) string {
	var out []string
	for _, ch := range cangjie.ExtractHan(text) {
		if codes := t.Codes(ch); len(codes) > 0 {
			out = append(out, RenderCodes(codes, glyphs))
		}
	}
	return strings.Join(out, " ")
}

// TextKeys renders key glyphs for every Han character of text, preferring
// cj5 codes and falling back to cj3 per character.
func TextKeys(text string, cj3, cj5 *cangjie.Table) string {
	var out []string
	for _, ch := range cangjie.ExtractHan(text) {
		codes := cj5.Codes(ch)
		if len(codes) == 0 {
			codes = cj3.Codes(ch)
		}
		if len(codes) > 0 {
			out = append(out, RenderCodes(codes, true))
		}
	}
	return strings.Join(out, " ")
}

// FillOptions configures FillExport. Column numbers are 1-based, matching
// how Anki's import dialog counts them; a zero column is unused. At least
// one of CJ3Col and CJ5Col must be set, with its table.
type FillOptions struct {
	SourceCol int
	CJ3Col    int
	CJ5Col    int
	CJ3       *cangjie.Table
	CJ5       *cangjie.Table
	Glyphs    bool
}

func (o FillOptions) validate() error {
	if o.SourceCol < 1 {
		return fmt.Errorf("source column must be 1 or higher, got %d", o.SourceCol)
	}
	if o.CJ3Col < 1 && o.CJ5Col < 1 {
		return fmt.Errorf("no output column selected")
	}
	if o.CJ3Col > 0 && o.CJ3 == nil {
		return fmt.Errorf("cangjie3 column selected without a table")
	}
	if o.CJ5Col > 0 && o.CJ5 == nil {
		return fmt.Errorf("cangjie5 column selected without a table")
	}
	return nil
}

func (o FillOptions) maxCol() int {
	max := o.SourceCol
	if o.CJ3Col > max {
		max = o.CJ3Col
	}
	if o.CJ5Col > max {
		max = o.CJ5Col
	}
	return max
}

// FillExport rewrites an Anki tab-separated deck export, filling the
// Cangjie columns from the source column of each row. Header lines
// starting with "#" and blank lines pass through unchanged. Rows shorter
// than the selected columns are padded with empty fields. Input and
// output both use UTF-8 with a byte order mark, the encoding Anki
// expects. It returns the number of rows filled.
func FillExport(inPath, outPath string, opts FillOptions) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return 0, fmt.Errorf("opening export: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	tw := transform.NewWriter(out, unicode.UTF8BOM.NewEncoder())
	w := bufio.NewWriter(tw)

	sc := bufio.NewScanner(transform.NewReader(in, unicode.UTF8BOM.NewDecoder()))
	// Anki rows can hold large HTML fields.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	rows := 0
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			w.WriteString(line)
			w.WriteByte('\n')
			continue
		}

		fields := strings.Split(line, "\t")
		for len(fields) < opts.maxCol() {
			fields = append(fields, "")
		}

		src := fields[opts.SourceCol-1]
		if opts.CJ3Col > 0 {
			fields[opts.CJ3Col-1] = TextCodes(src, opts.CJ3, opts.Glyphs)
		}
		if opts.CJ5Col > 0 {
			fields[opts.CJ5Col-1] = TextCodes(src, opts.CJ5, opts.Glyphs)
		}

		w.WriteString(strings.Join(fields, "\t"))
		w.WriteByte('\n')
		rows++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading export: %w", err)
	}

	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}
	if err := tw.Close(); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}
	return rows, nil
}
