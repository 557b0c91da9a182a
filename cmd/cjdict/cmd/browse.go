package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tsangkit/cjdict/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse Cangjie tables in the TUI",
	Long: `Load both Cangjie tables and browse them in an interactive terminal UI.

The detail pane shows the definition each character would receive in a
built dictionary.

Controls:
  ↑/↓           Select a character
  type          Filter by character or code prefix
  Esc           Quit`,
	RunE: runBrowse,
}

var browseTables tableOpts

func init() {
	rootCmd.AddCommand(browseCmd)
	addTableFlags(browseCmd, &browseTables)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := loadUserConfig()
	browseTables.applyConfig(cmd, cfg)

	cj3, cj5, err := browseTables.load()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(cj3, cj5), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
