// Package tui provides an interactive terminal browser for Cangjie tables.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tsangkit/cjdict/internal/cangjie"
	"github.com/tsangkit/cjdict/internal/pinyin"
	"github.com/tsangkit/cjdict/internal/pleco"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee")).
			Padding(0, 1)

	rowSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

const defaultListHeight = 10

// Row is one browsable character with its codes from both standards.
type Row struct {
	Char rune
	CJ3  []string
	CJ5  []string
}

// Model is the browse view: a filterable character list with a detail
// pane showing the definition the character would receive.
type Model struct {
	input    textinput.Model
	rows     []Row
	matches  []int
	selected int
	query    string

	merger *pleco.Merger
	py     *pinyin.Renderer

	width  int
	height int
}

// New builds a browse model over the union of both tables.
func New(cj3, cj5 *cangjie.Table) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a character or code prefix..."
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	m := Model{
		input:  ti,
		rows:   buildRows(cj3, cj5),
		merger: pleco.NewMerger(),
		py:     pinyin.NewRenderer(),
	}
	m.matches = make([]int, len(m.rows))
	for i := range m.rows {
		m.matches[i] = i
	}
	return m
}

func buildRows(cj3, cj5 *cangjie.Table) []Row {
	seen := make(map[rune]bool)
	var chars []rune
	for _, ch := range cj3.Characters() {
		if !seen[ch] {
			seen[ch] = true
			chars = append(chars, ch)
		}
	}
	for _, ch := range cj5.Characters() {
		if !seen[ch] {
			seen[ch] = true
			chars = append(chars, ch)
		}
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	rows := make([]Row, 0, len(chars))
	for _, ch := range chars {
		rows = append(rows, Row{Char: ch, CJ3: cj3.Codes(ch), CJ5: cj5.Codes(ch)})
	}
	return rows
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.matches)-1 {
				m.selected++
			}
			return m, nil
		case "pgup":
			m.selected -= m.listHeight()
			if m.selected < 0 {
				m.selected = 0
			}
			return m, nil
		case "pgdown":
			m.selected += m.listHeight()
			if m.selected > len(m.matches)-1 {
				m.selected = len(m.matches) - 1
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		m.refilter()
	}
	return m, cmd
}

// refilter rebuilds the match list for the current query. Queries that
// contain Han characters match by character; latin queries match any
// code prefix in either standard.
func (m *Model) refilter() {
	m.matches = m.matches[:0]
	q := strings.ToLower(strings.TrimSpace(m.query))
	if q == "" {
		for i := range m.rows {
			m.matches = append(m.matches, i)
		}
		m.selected = 0
		return
	}

	han := len(cangjie.ExtractHan(q)) > 0
	for i, r := range m.rows {
		if han {
			if strings.ContainsRune(q, r.Char) {
				m.matches = append(m.matches, i)
			}
			continue
		}
		if hasCodePrefix(r.CJ3, q) || hasCodePrefix(r.CJ5, q) {
			m.matches = append(m.matches, i)
		}
	}
	m.selected = 0
}

func hasCodePrefix(codes []string, prefix string) bool {
	for _, c := range codes {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return defaultListHeight
	}
	// Title, input, count, detail pane and help take the rest.
	h := m.height - 16
	if h < 3 {
		h = 3
	}
	if h > defaultListHeight {
		h = defaultListHeight
	}
	return h
}

// View renders the browser.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Cangjie Browser"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d characters", len(m.matches), len(m.rows))))
	b.WriteString("\n\n")

	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: select • type to filter • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderList() string {
	if len(m.matches) == 0 {
		return rowStyle.Render("no matches") + "\n"
	}

	visible := m.listHeight()
	if visible > len(m.matches) {
		visible = len(m.matches)
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	var b strings.Builder
	for i := start; i < start+visible; i++ {
		r := m.rows[m.matches[i]]
		line := fmt.Sprintf("%s %s %s",
			runewidth.FillRight(string(r.Char), 4),
			runewidth.FillRight(strings.Join(r.CJ3, ","), 14),
			strings.Join(r.CJ5, ","),
		)
		if i == m.selected {
			b.WriteString(rowSelectedStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	if len(m.matches) == 0 || m.selected >= len(m.matches) {
		return ""
	}
	r := m.rows[m.matches[m.selected]]
	word := string(r.Char)

	var b strings.Builder
	b.WriteString(labelStyle.Render("Character"))
	b.WriteString(valueStyle.Render(word))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Pinyin"))
	b.WriteString(valueStyle.Render(m.py.Pron(word)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Cangjie3"))
	b.WriteString(codeStyle.Render(strings.Join(r.CJ3, ", ")))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Cangjie5"))
	b.WriteString(codeStyle.Render(strings.Join(r.CJ5, ", ")))

	if defn := m.merger.Merge(r.CJ3, r.CJ5); defn != "" {
		b.WriteString("\n\n")
		b.WriteString(valueStyle.Render(strings.ReplaceAll(defn, pleco.Newline, "\n")))
	}

	return detailStyle.Render(b.String())
}
