package anki_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tsangkit/cjdict/internal/anki"
	"github.com/tsangkit/cjdict/internal/cangjie"
)

func loadTestTable(t *testing.T, content string) *cangjie.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	tbl, err := cangjie.Load(path)
	require.NoError(t, err)
	return tbl
}

func TestRenderCodes(t *testing.T) {
	t.Parallel()
	require.Equal(t, "a/ab", anki.RenderCodes([]string{"a", "ab"}, false))
	require.Equal(t, "日/日月", anki.RenderCodes([]string{"a", "ab"}, true))
	require.Equal(t, "", anki.RenderCodes(nil, false))
}

func TestTextCodes(t *testing.T) {
	t.Parallel()
	tbl := loadTestTable(t, "明 ab\n好 vnd\n")
	require.Equal(t, "ab vnd", anki.TextCodes("明天好", tbl, false))
	require.Equal(t, "日月 女弓木", anki.TextCodes("明天好", tbl, true))
	require.Equal(t, "ab", anki.TextCodes("<b>明</b> bright", tbl, false))
	require.Equal(t, "", anki.TextCodes("no han here", tbl, false))
}

func TestTextKeys(t *testing.T) {
	t.Parallel()
	cj3 := loadTestTable(t, "明 ab\n日 a\n")
	cj5 := loadTestTable(t, "明 ba\n")
	// cj5 wins where present, cj3 fills the gaps
	require.Equal(t, "月日 日", anki.TextKeys("明日", cj3, cj5))
}

func TestFillExport(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cj3 := loadTestTable(t, "明 ab\n好 vnd\n日 a\n")
	cj5 := loadTestTable(t, "明 ab\n好 vnd\n日 a\n")

	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	input := "\ufeff#separator:tab\n#html:false\n" +
		"明天 see you\t\t\n" +
		"好 good\t\t\n" +
		"\n" +
		"日 sun\n"
	require.NoError(t, os.WriteFile(in, []byte(input), 0o644))

	rows, err := anki.FillExport(in, out, anki.FillOptions{
		SourceCol: 1,
		CJ3Col:    2,
		CJ5Col:    3,
		CJ3:       cj3,
		CJ5:       cj5,
	})
	require.NoError(t, err)
	require.Equal(t, 3, rows)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want := "\ufeff#separator:tab\n#html:false\n" +
		"明天 see you\tab\tab\n" +
		"好 good\tvnd\tvnd\n" +
		"\n" +
		"日 sun\ta\ta\n"
	require.Equal(t, want, string(got))
}

func TestFillExportGlyphs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cj5 := loadTestTable(t, "明 ab\n")

	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("明\t\n"), 0o644))

	rows, err := anki.FillExport(in, out, anki.FillOptions{
		SourceCol: 1,
		CJ5Col:    2,
		CJ5:       cj5,
		Glyphs:    true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, rows)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "\ufeff明\t日月\n", string(got))
}

func TestFillExportValidation(t *testing.T) {
	t.Parallel()
	tbl := loadTestTable(t, "明 ab\n")
	_, err := anki.FillExport("in", "out", anki.FillOptions{SourceCol: 0, CJ3Col: 2, CJ3: tbl})
	require.Error(t, err)
	_, err = anki.FillExport("in", "out", anki.FillOptions{SourceCol: 1})
	require.Error(t, err)
	_, err = anki.FillExport("in", "out", anki.FillOptions{SourceCol: 1, CJ3Col: 2})
	require.Error(t, err)
}
