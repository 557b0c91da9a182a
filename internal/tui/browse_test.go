package tui_test

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/tsangkit/cjdict/internal/cangjie"
	"github.com/tsangkit/cjdict/internal/tui"
)

func newTestModel(t *testing.T) tea.Model {
	t.Helper()
	dir := t.TempDir()
	cj3Path := filepath.Join(dir, "cj3.txt")
	cj5Path := filepath.Join(dir, "cj5.txt")
	require.NoError(t, os.WriteFile(cj3Path, []byte("明 ab\n好 vnd\n"), 0o644))
	require.NoError(t, os.WriteFile(cj5Path, []byte("明 ab\n日 a\n"), 0o644))

	cj3, err := cangjie.Load(cj3Path, cangjie.WithVersion(cangjie.Version3))
	require.NoError(t, err)
	cj5, err := cangjie.Load(cj5Path, cangjie.WithVersion(cangjie.Version5))
	require.NoError(t, err)
	return tui.New(cj3, cj5)
}

func typeString(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestBrowseShowsUnion(t *testing.T) {
	t.Parallel()
	view := newTestModel(t).View()
	require.Contains(t, view, "3/3 characters")
	require.Contains(t, view, "明")
	require.Contains(t, view, "好")
	require.Contains(t, view, "日")
}

func TestBrowseFilterByCodePrefix(t *testing.T) {
	t.Parallel()
	m := typeString(newTestModel(t), "ab")
	view := m.View()
	require.Contains(t, view, "1/3 characters")
	require.Contains(t, view, "明")
	require.NotContains(t, view, "好")
}

func TestBrowseFilterByCharacter(t *testing.T) {
	t.Parallel()
	m := typeString(newTestModel(t), "好")
	view := m.View()
	require.Contains(t, view, "1/3 characters")
	require.Contains(t, view, "女 弓 木")
}

func TestBrowseQuitKeys(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
