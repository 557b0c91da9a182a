// Package cangjie loads and queries Cangjie input method code tables.
//
// A code table is a plain text file with one mapping per line: a Han
// character and its code, a short sequence of the letters a-z. The two
// columns are separated by whitespace (or a configured delimiter) and
// extra columns, comment lines starting with "#" and blank lines are
// ignored. Tables exported from SCIM or ibus-table wrap the mappings in
// BEGIN_TABLE/END_TABLE markers and put the code first; Load detects the
// markers and switches column order for the section automatically.
package cangjie

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Version identifies which Cangjie standard a table carries.
type Version int

// The two code standards in common use. Cangjie3 matches most free IME
// tables, Cangjie5 the revised codes shipped with newer systems.
const (
	Version3 Version = 3
	Version5 Version = 5
)

func (v Version) String() string {
	switch v {
	case Version3:
		return "Cangjie3"
	case Version5:
		return "Cangjie5"
	default:
		return "Cangjie"
	}
}

// ErrMalformedTable marks lines that violate the character/code contract.
// Errors returned by Load match it with errors.Is.
var ErrMalformedTable = errors.New("malformed table line")

// ParseError identifies the offending line of a malformed table.
type ParseError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Path, e.Line, e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrMalformedTable }

// Table maps Han characters to their Cangjie codes for one version of the
// standard. A character keeps every distinct code the file lists for it,
// in file order.
type Table struct {
	version Version
	codes   map[rune][]string
}

type loadConfig struct {
	version   Version
	delimiter string
	codeFirst bool
}

// Option configures Load.
type Option func(*loadConfig)

// WithVersion labels the table with the standard it carries.
func WithVersion(v Version) Option {
	return func(c *loadConfig) { c.version = v }
}

// WithDelimiter splits columns on an exact delimiter instead of runs of
// whitespace.
func WithDelimiter(d string) Option {
	return func(c *loadConfig) { c.delimiter = d }
}

// WithCodeFirst reads tables whose lines carry the code before the
// character, the column order used by SCIM and ibus-table exports.
func WithCodeFirst() Option {
	return func(c *loadConfig) { c.codeFirst = true }
}

// Load reads a code table from path.
//
// A UTF-8 byte order mark is tolerated and codes are folded to lower
// case. Lines with fewer than two columns are skipped, as are mappings
// for multi-character words. A line whose character column holds anything
// but Han text, or whose code column holds anything but letters, stops
// the load with an error matching ErrMalformedTable.
func Load(path string, opts ...Option) (*Table, error) {
	var cfg loadConfig
	for _, o := range opts {
		o(&cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	data, _, err = transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding table: %w", err)
	}

	lines := strings.Split(string(data), "\n")

	// SCIM and ibus-table files carry a header block; only the section
	// between BEGIN_TABLE and END_TABLE holds mappings, code first.
	start, end := 0, len(lines)
	codeFirst := cfg.codeFirst
	for i, l := range lines {
		switch strings.TrimSpace(l) {
		case "BEGIN_TABLE":
			if start == 0 {
				start = i + 1
				codeFirst = true
			}
		case "END_TABLE":
			if start > 0 && end == len(lines) {
				end = i
			}
		}
	}

	t := &Table{version: cfg.version, codes: make(map[rune][]string)}
	for i := start; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var fields []string
		if cfg.delimiter != "" {
			fields = strings.Split(line, cfg.delimiter)
		} else {
			fields = strings.Fields(line)
		}
		if len(fields) < 2 {
			continue
		}

		charField, codeField := fields[0], fields[1]
		if codeFirst {
			charField, codeField = codeField, charField
		}
		charField = strings.TrimSpace(charField)
		codeField = strings.TrimSpace(codeField)
		if charField == "" || codeField == "" {
			continue
		}

		code, ok := normalizeCode(codeField)
		if !ok {
			return nil, &ParseError{
				Path: path, Line: i + 1, Text: line,
				Reason: "code is not a sequence of letters a-z",
			}
		}

		chars := []rune(charField)
		if len(chars) > 1 {
			if allHan(chars) {
				// multi-character words have no single code
				continue
			}
			return nil, &ParseError{
				Path: path, Line: i + 1, Text: line,
				Reason: "character column is not a Han character",
			}
		}
		if !IsHan(chars[0]) {
			return nil, &ParseError{
				Path: path, Line: i + 1, Text: line,
				Reason: "character column is not a Han character",
			}
		}

		t.add(chars[0], code)
	}
	return t, nil
}

// normalizeCode lower-cases s and reports whether it consists only of the
// letters a-z.
func normalizeCode(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			return "", false
		}
	}
	return b.String(), true
}

func allHan(rs []rune) bool {
	for _, r := range rs {
		if !IsHan(r) {
			return false
		}
	}
	return true
}

// add records a code for ch unless the same code was already seen.
func (t *Table) add(ch rune, code string) {
	for _, c := range t.codes[ch] {
		if c == code {
			return
		}
	}
	t.codes[ch] = append(t.codes[ch], code)
}

// Codes returns the codes recorded for ch in file order, nil when the
// table has no mapping. A nil table is empty.
func (t *Table) Codes(ch rune) []string {
	if t == nil {
		return nil
	}
	return t.codes[ch]
}

// Characters returns every mapped character in ascending code point order.
func (t *Table) Characters() []rune {
	if t == nil {
		return nil
	}
	out := make([]rune, 0, len(t.codes))
	for ch := range t.codes {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of mapped characters.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.codes)
}

// Version returns which standard the table was loaded as.
func (t *Table) Version() Version {
	if t == nil {
		return 0
	}
	return t.version
}
