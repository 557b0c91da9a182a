package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"github.com/tsangkit/cjdict/internal/anki"
	"github.com/tsangkit/cjdict/internal/cangjie"
	"github.com/tsangkit/cjdict/internal/pinyin"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <characters>",
	Short: "Look up Cangjie codes for characters",
	Long: `Look up the Cangjie3 and Cangjie5 codes of Chinese characters,
with pinyin and the radicals printed on the keys.

Example:
  cjdict lookup 明
  cjdict lookup 中文輸入`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

var lookupTables tableOpts

func init() {
	rootCmd.AddCommand(lookupCmd)
	addTableFlags(lookupCmd, &lookupTables)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := loadUserConfig()
	lookupTables.applyConfig(cmd, cfg)

	cj3, cj5, err := lookupTables.load()
	if err != nil {
		return err
	}

	chars := cangjie.ExtractHan(strings.Join(args, ""))
	if len(chars) == 0 {
		return fmt.Errorf("no Chinese characters in arguments")
	}

	py := pinyin.NewRenderer()
	tbl := table.New("Char", "Pinyin", "Cangjie3", "Cangjie5", "Keys").WithWidthFunc(runewidth.StringWidth)
	for _, ch := range chars {
		word := string(ch)
		tbl.AddRow(
			word,
			py.Pron(word),
			strings.Join(cj3.Codes(ch), ", "),
			strings.Join(cj5.Codes(ch), ", "),
			anki.TextKeys(word, cj3, cj5),
		)
	}
	tbl.Print()

	return nil
}
