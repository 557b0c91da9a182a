package cangjie_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsangkit/cjdict/internal/cangjie"
)

func TestIsHan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		r    rune
		want bool
	}{
		{'好', true},
		{'一', true},
		{'〇', true},
		{0x3400, true},  // Extension A start
		{0x20000, true}, // Extension B start
		{0xF900, true},  // compatibility ideograph
		{0x323AF, true}, // Extension H end
		{'a', false},
		{'あ', false},
		{'。', false},
		{' ', false},
		{0x33480, false}, // past Extension J
	}
	for _, tt := range tests {
		if got := cangjie.IsHan(tt.r); got != tt.want {
			t.Errorf("IsHan(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestExtractHan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []rune
	}{
		{name: "plain", in: "好日", want: []rune{'好', '日'}},
		{name: "mixed markup", in: "<b>好</b> means good", want: []rune{'好'}},
		{name: "punctuation", in: "你好，世界！", want: []rune{'你', '好', '世', '界'}},
		{name: "none", in: "hello", want: nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, cangjie.ExtractHan(tt.in)); diff != "" {
				t.Errorf("ExtractHan(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestRadical(t *testing.T) {
	t.Parallel()
	if g, ok := cangjie.Radical('a'); !ok || g != '日' {
		t.Errorf("Radical('a') = %c, %v", g, ok)
	}
	if _, ok := cangjie.Radical('1'); ok {
		t.Error("Radical('1') reported a glyph")
	}
}

func TestShapes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "日月金"},
		{"hqi", "竹手戈"},
		{"z", "重"},
		{"a?c", "日?金"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cangjie.Shapes(tt.in); got != tt.want {
			t.Errorf("Shapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
