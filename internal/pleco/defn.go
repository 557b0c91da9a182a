// Package pleco renders Cangjie code tables as definition text and writes
// the .pqb dictionary container that the Pleco app imports.
package pleco

import (
	"sort"
	"strings"

	"github.com/tsangkit/cjdict/internal/cangjie"
)

// Newline is Pleco's private line break character. Definition fields use
// it for internal breaks; the app treats ordinary newlines as spaces.
const Newline = ""

// DefaultSeparator joins multiple codes on one definition line.
const DefaultSeparator = "/"

// Section labels for the definition blocks.
const (
	labelBoth = "Cangjie"
	labelCJ3  = "Cangjie3"
	labelCJ5  = "Cangjie5"
)

// Merger combines a character's Cangjie3 and Cangjie5 codes into one
// definition.
type Merger struct {
	sep string
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithSeparator changes the string joining multiple codes on a line.
func WithSeparator(sep string) MergerOption {
	return func(m *Merger) { m.sep = sep }
}

// NewMerger returns a Merger joining codes with DefaultSeparator.
func NewMerger(opts ...MergerOption) *Merger {
	m := &Merger{sep: DefaultSeparator}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Merge renders the definition for one character. When both versions
// carry the same set of codes the result is a single "Cangjie" block;
// otherwise each non-empty version gets its own labelled block, blocks
// separated by a blank line. Two empty code sets yield an empty string,
// meaning the character gets no entry.
//
// Code order inside a block follows the slice, duplicates removed.
func (m *Merger) Merge(cj3, cj5 []string) string {
	cj3 = dedupe(cj3)
	cj5 = dedupe(cj5)
	if len(cj3) == 0 && len(cj5) == 0 {
		return ""
	}
	if len(cj3) > 0 && sameSet(cj3, cj5) {
		return m.section(labelBoth, cj3)
	}
	var blocks []string
	if len(cj3) > 0 {
		blocks = append(blocks, m.section(labelCJ3, cj3))
	}
	if len(cj5) > 0 {
		blocks = append(blocks, m.section(labelCJ5, cj5))
	}
	return strings.Join(blocks, Newline+Newline)
}

// section renders one labelled block: a line of key glyphs over a line of
// Latin letters, both spread with spaces so Pleco's font keeps the
// columns aligned:
//
//	Cangjie3:
//	日 月 / 日 月 金
//	a b / a b c
func (m *Merger) section(label string, codes []string) string {
	glyphs := make([]string, len(codes))
	letters := make([]string, len(codes))
	for i, code := range codes {
		glyphs[i] = spreadGlyphs(code)
		letters[i] = spreadLetters(code)
	}
	join := " " + m.sep + " "
	return label + ":" + Newline +
		strings.Join(glyphs, join) + Newline +
		strings.Join(letters, join)
}

// spreadGlyphs renders "abc" as "日 月 金". Letters without a key glyph
// pass through.
func spreadGlyphs(code string) string {
	parts := make([]string, 0, len(code))
	for _, r := range code {
		if g, ok := cangjie.Radical(r); ok {
			parts = append(parts, string(g))
		} else {
			parts = append(parts, string(r))
		}
	}
	return strings.Join(parts, " ")
}

// spreadLetters renders "abc" as "a b c".
func spreadLetters(code string) string {
	parts := make([]string, 0, len(code))
	for _, r := range code {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, " ")
}

func dedupe(codes []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// sameSet reports whether a and b hold the same codes regardless of
// order. Both slices must already be deduplicated.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, c := range a {
		seen[c] = struct{}{}
	}
	for _, c := range b {
		if _, ok := seen[c]; !ok {
			return false
		}
	}
	return true
}

// Entry is one headword of the output dictionary.
type Entry struct {
	Word string // a single Han character
	Defn string // definition text with Newline breaks
}

// BuildEntries merges two tables into dictionary entries, one per
// character of the union of both tables, in ascending code point order.
// Characters whose merge comes out empty are dropped.
func BuildEntries(cj3, cj5 *cangjie.Table, m *Merger) []Entry {
	set := make(map[rune]struct{}, cj3.Len()+cj5.Len())
	for _, ch := range cj3.Characters() {
		set[ch] = struct{}{}
	}
	for _, ch := range cj5.Characters() {
		set[ch] = struct{}{}
	}
	chars := make([]rune, 0, len(set))
	for ch := range set {
		chars = append(chars, ch)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	entries := make([]Entry, 0, len(chars))
	for _, ch := range chars {
		defn := m.Merge(cj3.Codes(ch), cj5.Codes(ch))
		if defn == "" {
			continue
		}
		entries = append(entries, Entry{Word: string(ch), Defn: defn})
	}
	return entries
}
