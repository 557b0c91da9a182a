package cangjie_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tsangkit/cjdict/internal/cangjie"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		opts []cangjie.Option
		want map[rune][]string
	}{
		{
			name: "character then code",
			in:   "日 a\n月 b\n明 ab\n",
			want: map[rune][]string{'日': {"a"}, '月': {"b"}, '明': {"ab"}},
		},
		{
			name: "code first",
			in:   "a 日\nab 明\n",
			opts: []cangjie.Option{cangjie.WithCodeFirst()},
			want: map[rune][]string{'日': {"a"}, '明': {"ab"}},
		},
		{
			name: "comments blanks and short lines skipped",
			in:   "# header\n\n日 a\nnonsense\n月 b\n",
			want: map[rune][]string{'日': {"a"}, '月': {"b"}},
		},
		{
			name: "upper case codes folded",
			in:   "日 A\n明 Ab\n",
			want: map[rune][]string{'日': {"a"}, '明': {"ab"}},
		},
		{
			name: "multiple codes kept in file order",
			in:   "車 jwj\n車 kq\n",
			want: map[rune][]string{'車': {"jwj", "kq"}},
		},
		{
			name: "duplicate codes collapsed",
			in:   "日 a\n日 A\n日 a\n",
			want: map[rune][]string{'日': {"a"}},
		},
		{
			name: "multi character words skipped",
			in:   "日月 ab\n日 a\n",
			want: map[rune][]string{'日': {"a"}},
		},
		{
			name: "extra columns ignored",
			in:   "日 a 352\n",
			want: map[rune][]string{'日': {"a"}},
		},
		{
			name: "byte order mark stripped",
			in:   "\ufeff日 a\n",
			want: map[rune][]string{'日': {"a"}},
		},
		{
			name: "tab delimiter",
			in:   "日\ta\t99\n",
			opts: []cangjie.Option{cangjie.WithDelimiter("\t")},
			want: map[rune][]string{'日': {"a"}},
		},
		{
			name: "scim section parsed code first",
			in: "SCIM_Generic_Table_Phrase_Library_TEXT\nNAME = cangjie\n" +
				"BEGIN_TABLE\na\t日\t99\nab\t明\t5\nEND_TABLE\ntrailing garbage\n",
			want: map[rune][]string{'日': {"a"}, '明': {"ab"}},
		},
		{
			name: "ideographic zero accepted",
			in:   "〇 xc\n",
			want: map[rune][]string{'〇': {"xc"}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl, err := cangjie.Load(writeTable(t, tt.in), tt.opts...)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			got := make(map[rune][]string)
			for _, ch := range tbl.Characters() {
				got[ch] = tbl.Codes(ch)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		line int
	}{
		{name: "latin character column", in: "日 a\nX a\n", line: 2},
		{name: "kana character column", in: "あ a\n", line: 1},
		{name: "digits in code", in: "日 a1\n", line: 1},
		{name: "mixed word with non han", in: "日x ab\n", line: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cangjie.Load(writeTable(t, tt.in))
			if !errors.Is(err, cangjie.ErrMalformedTable) {
				t.Fatalf("Load error = %v, want ErrMalformedTable", err)
			}
			var perr *cangjie.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Load error = %T, want *ParseError", err)
			}
			if perr.Line != tt.line {
				t.Errorf("ParseError.Line = %d, want %d", perr.Line, tt.line)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := cangjie.Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}

func TestTableVersion(t *testing.T) {
	t.Parallel()
	tbl, err := cangjie.Load(writeTable(t, "日 a\n"), cangjie.WithVersion(cangjie.Version5))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := tbl.Version(); got != cangjie.Version5 {
		t.Errorf("Version() = %v, want %v", got, cangjie.Version5)
	}
	if got := cangjie.Version3.String(); got != "Cangjie3" {
		t.Errorf("Version3.String() = %q", got)
	}
}

func TestNilTable(t *testing.T) {
	t.Parallel()
	var tbl *cangjie.Table
	if got := tbl.Codes('日'); got != nil {
		t.Errorf("nil Codes = %v, want nil", got)
	}
	if got := tbl.Len(); got != 0 {
		t.Errorf("nil Len = %d, want 0", got)
	}
	if got := tbl.Characters(); got != nil {
		t.Errorf("nil Characters = %v, want nil", got)
	}
}

func TestCharactersSorted(t *testing.T) {
	t.Parallel()
	tbl, err := cangjie.Load(writeTable(t, "月 b\n日 a\n明 ab\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []rune{'日', '明', '月'}
	if diff := cmp.Diff(want, tbl.Characters()); diff != "" {
		t.Errorf("Characters mismatch (-want +got):\n%s", diff)
	}
}
