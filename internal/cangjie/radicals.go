package cangjie

import "strings"

// radicals maps each code letter to the Han glyph printed on that key of a
// Cangjie keyboard.
var radicals = map[rune]rune{
	'a': '日', 'b': '月', 'c': '金', 'd': '木', 'e': '水',
	'f': '火', 'g': '土', 'h': '竹', 'i': '戈', 'j': '十',
	'k': '大', 'l': '中', 'm': '一', 'n': '弓', 'o': '人',
	'p': '心', 'q': '手', 'r': '口', 's': '尸', 't': '廿',
	'u': '山', 'v': '女', 'w': '田', 'x': '難', 'y': '卜',
	'z': '重',
}

// Radical returns the key glyph for a single code letter.
func Radical(letter rune) (rune, bool) {
	g, ok := radicals[letter]
	return g, ok
}

// Shapes renders a code as its key glyphs, so "abc" becomes 日月金.
// Letters without a glyph pass through unchanged.
func Shapes(code string) string {
	var b strings.Builder
	for _, r := range code {
		if g, ok := radicals[r]; ok {
			b.WriteRune(g)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
