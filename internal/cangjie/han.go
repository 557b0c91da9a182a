package cangjie

// hanRanges lists the CJK ideograph blocks accepted as headwords: the
// unified blocks through Extension J plus the compatibility blocks.
var hanRanges = [...][2]rune{
	{0x3400, 0x4DBF},   // Extension A
	{0x4E00, 0x9FFF},   // URO
	{0xF900, 0xFAFF},   // compatibility ideographs
	{0x20000, 0x2A6DF}, // Extension B
	{0x2A700, 0x2B73F}, // Extension C
	{0x2B740, 0x2B81D}, // Extension D
	{0x2B820, 0x2CEAD}, // Extension E
	{0x2CEB0, 0x2EBE0}, // Extension F
	{0x2EBF0, 0x2EE5D}, // Extension I
	{0x2F800, 0x2FA1F}, // compatibility supplement
	{0x31350, 0x323AF}, // Extension H
	{0x323B0, 0x33479}, // Extension J
}

// IsHan reports whether r is a Han character this tool accepts as a
// headword. The ideographic zero 〇 counts even though Unicode places it
// outside the ideograph blocks.
func IsHan(r rune) bool {
	if r == '〇' {
		return true
	}
	for _, rg := range hanRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// ExtractHan returns the Han characters of s in order of appearance.
// Markup, Latin text and punctuation around them is ignored, so callers
// can feed raw Anki fields or CSV cells directly.
func ExtractHan(s string) []rune {
	var out []rune
	for _, r := range s {
		if IsHan(r) {
			out = append(out, r)
		}
	}
	return out
}
