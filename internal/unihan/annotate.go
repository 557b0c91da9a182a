package unihan

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsangkit/cjdict/internal/cangjie"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// RenderMode selects how a kCangjie reading is written out.
type RenderMode string

// Render modes: Latin letters, key glyphs, or "abc (日月金)".
const (
	RenderLatin   RenderMode = "latin"
	RenderPrompts RenderMode = "prompts"
	RenderBoth    RenderMode = "both"
)

// ParseRenderMode validates a mode name from a flag.
func ParseRenderMode(s string) (RenderMode, error) {
	switch RenderMode(s) {
	case RenderLatin, RenderPrompts, RenderBoth:
		return RenderMode(s), nil
	default:
		return "", fmt.Errorf("unknown render mode %q", s)
	}
}

// Render writes a reading in the given mode. Unihan stores codes in upper
// case; they are folded before rendering. Empty readings stay empty.
func Render(code string, mode RenderMode) string {
	if code == "" {
		return ""
	}
	latin := strings.ToLower(code)
	switch mode {
	case RenderLatin:
		return latin
	case RenderPrompts:
		return cangjie.Shapes(latin)
	default:
		return fmt.Sprintf("%s (%s)", latin, cangjie.Shapes(latin))
	}
}

// Annotator looks up kCangjie readings through the cache and renders
// annotations for text.
type Annotator struct {
	Cache  *Cache
	Source Source
	Mode   RenderMode

	// RefreshEmpty treats cached empty readings as misses, repairing
	// caches filled before the data source had the character.
	RefreshEmpty bool

	// StopAfter ends line or row processing after this many consecutive
	// blank inputs; zero disables the stop.
	StopAfter int

	// Hits and Misses count cache lookups, for reporting.
	Hits   int
	Misses int
}

// Lookup returns the reading for ch, consulting the cache first and
// recording what the source answers. Without a source, uncached
// characters yield an empty reading and the cache is left alone.
func (a *Annotator) Lookup(ch rune) (string, error) {
	if a.Cache != nil {
		code, ok, err := a.Cache.Get(ch)
		if err != nil {
			return "", err
		}
		if ok && !(a.RefreshEmpty && code == "") {
			a.Hits++
			return code, nil
		}
	}

	a.Misses++
	if a.Source == nil {
		return "", nil
	}
	code, err := a.Source.KCangjie(ch)
	if err != nil {
		return "", err
	}
	if a.Cache != nil {
		if err := a.Cache.Put(ch, code); err != nil {
			return "", err
		}
	}
	return code, nil
}

// Text annotates the Han characters of s, space joining the rendered
// readings. Characters without a reading contribute nothing.
func (a *Annotator) Text(s string) (string, error) {
	var out []string
	for _, ch := range cangjie.ExtractHan(s) {
		code, err := a.Lookup(ch)
		if err != nil {
			return "", err
		}
		if code != "" {
			out = append(out, Render(code, a.Mode))
		}
	}
	return strings.Join(out, " "), nil
}

// AnnotateLines processes pasted text line by line, replacing each line
// with its annotation. Blank lines pass through; after StopAfter
// consecutive blanks processing ends, so a paste with trailing empty
// lines terminates cleanly.
func (a *Annotator) AnnotateLines(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	bw := bufio.NewWriter(w)

	emptyRun := 0
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			emptyRun++
			bw.WriteByte('\n')
			if a.StopAfter > 0 && emptyRun >= a.StopAfter {
				break
			}
			continue
		}
		emptyRun = 0
		ann, err := a.Text(line)
		if err != nil {
			return err
		}
		bw.WriteString(ann)
		bw.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// AnnotateCSV copies a CSV stream, writing each row's annotation into
// outCol (appended to the header when missing). sourceCol is matched by
// header name. Rows with a blank source cell get an empty annotation and
// count toward StopAfter. Input and output carry a UTF-8 byte order
// mark, which spreadsheet exports usually have.
func (a *Annotator) AnnotateCSV(r io.Reader, w io.Writer, sourceCol, outCol string) error {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("reading csv header: %w", err)
	}

	srcIdx := -1
	outIdx := -1
	for i, name := range header {
		if name == sourceCol {
			srcIdx = i
		}
		if name == outCol {
			outIdx = i
		}
	}
	if srcIdx < 0 {
		return fmt.Errorf("missing column %q", sourceCol)
	}
	if outIdx < 0 {
		header = append(header, outCol)
		outIdx = len(header) - 1
	}

	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	emptyRun := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading csv: %w", err)
		}
		for len(row) < len(header) {
			row = append(row, "")
		}

		cell := strings.TrimSpace(row[srcIdx])
		if cell == "" {
			emptyRun++
			row[outIdx] = ""
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing csv: %w", err)
			}
			if a.StopAfter > 0 && emptyRun >= a.StopAfter {
				break
			}
			continue
		}

		emptyRun = 0
		ann, err := a.Text(cell)
		if err != nil {
			return err
		}
		row[outIdx] = ann
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
