package pinyin_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsangkit/cjdict/internal/pinyin"
)

func TestSyllables(t *testing.T) {
	t.Parallel()
	r := pinyin.NewRenderer()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "single character", in: "好", want: []string{"hao3"}},
		{name: "two characters", in: "中文", want: []string{"zhong1", "wen2"}},
		{name: "umlaut written as v", in: "女", want: []string{"nv3"}},
		{name: "no reading yields empty syllable", in: "好a", want: []string{"hao3", ""}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, r.Syllables(tt.in)); diff != "" {
				t.Errorf("Syllables(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestPron(t *testing.T) {
	t.Parallel()
	r := pinyin.NewRenderer()
	if got := r.Pron("好"); got != "hao3" {
		t.Errorf("Pron(好) = %q, want %q", got, "hao3")
	}
	if got := r.Pron("中文"); got != "zhong1 wen2" {
		t.Errorf("Pron(中文) = %q, want %q", got, "zhong1 wen2")
	}
}

func TestSortKey(t *testing.T) {
	t.Parallel()
	r := pinyin.NewRenderer()
	tests := []struct {
		name string
		word string
		want string
	}{
		{name: "single character", word: "好", want: "ｈａｏ３好"},
		{name: "two characters", word: "中文", want: "ｚｈｏｎｇ１中ｗｅｎ２文"},
		{name: "no reading", word: "a", want: "a"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			syls := r.Syllables(tt.word)
			if got := r.SortKey(tt.word, syls); got != tt.want {
				t.Errorf("SortKey(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}
