// Package pinyin renders Mandarin readings the way Pleco dictionary
// databases store them.
package pinyin

import (
	"strings"
	"unicode/utf8"

	gopinyin "github.com/mozillazg/go-pinyin"
	"golang.org/x/text/width"
)

// Renderer converts headwords to numeric-tone pinyin and sort keys.
type Renderer struct {
	args gopinyin.Args
}

// NewRenderer creates a renderer using numeric-tone style ("hao3"), the
// most common reading per character. Characters without a reading yield
// an empty syllable instead of being dropped, so syllable positions stay
// aligned with the headword.
func NewRenderer() *Renderer {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone3
	args.Fallback = func(r rune, a gopinyin.Args) []string {
		return []string{""}
	}
	return &Renderer{args: args}
}

// Syllables returns one syllable per character of word, with ü written
// as v ("nv3" for 女).
func (r *Renderer) Syllables(word string) []string {
	items := gopinyin.Pinyin(word, r.args)
	out := make([]string, 0, len(items))
	for _, item := range items {
		syl := ""
		if len(item) > 0 {
			syl = item[0]
		}
		out = append(out, strings.ReplaceAll(syl, "ü", "v"))
	}
	return out
}

// Pron returns the space-joined pronunciation field for word.
func (r *Renderer) Pron(word string) string {
	return strings.Join(r.Syllables(word), " ")
}

// SortKey builds Pleco's collation key for a headword: each syllable in
// fullwidth ASCII followed by its character. Syllables must come from
// Syllables(word); characters without a reading contribute only
// themselves.
func (r *Renderer) SortKey(word string, syllables []string) string {
	if utf8.RuneCountInString(word) == 1 {
		syl := ""
		if len(syllables) > 0 {
			syl = syllables[0]
		}
		return width.Widen.String(syl) + word
	}
	var b strings.Builder
	i := 0
	for _, ch := range word {
		if i < len(syllables) {
			b.WriteString(width.Widen.String(syllables[i]))
		}
		b.WriteRune(ch)
		i++
	}
	return b.String()
}
