package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"github.com/tsangkit/cjdict/internal/pleco"
)

var plecoCmd = &cobra.Command{
	Use:   "pleco",
	Short: "Build and inspect Pleco dictionary files",
	Long:  `Commands for building .pqb dictionaries from Cangjie tables and reading them back.`,
}

var plecoBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a .pqb dictionary from Cangjie tables",
	Long: `Build a Pleco user dictionary holding the Cangjie codes of every
character in the tables.

Each entry's definition shows the radical and Latin forms of the codes.
Characters whose Cangjie3 and Cangjie5 codes agree get a single
"Cangjie" block; characters that differ get one block per standard.

Rebuilding unchanged tables reproduces the output file byte for byte.

Examples:
  cjdict pleco build -o cangjie.pqb
  cjdict pleco build --cj3 tables/cj3.txt --cj5 tables/cj5.txt -o cangjie.pqb
  cjdict pleco build -o merged.pqb --base other.pqb`,
	RunE: runPlecoBuild,
}

var plecoInspectCmd = &cobra.Command{
	Use:   "inspect <file.pqb>",
	Short: "Show the properties and sample entries of a dictionary",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlecoInspect,
}

var plecoLookupCmd = &cobra.Command{
	Use:   "lookup <file.pqb> <word>",
	Short: "Look up one headword in a built dictionary",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlecoLookup,
}

var (
	plecoTables       tableOpts
	plecoOut          string
	plecoBase         string
	plecoName         string
	plecoMenuName     string
	plecoShortName    string
	plecoIcon         string
	plecoCreated      string
	plecoSeparator    string
	plecoInspectLimit int
)

func init() {
	rootCmd.AddCommand(plecoCmd)
	plecoCmd.AddCommand(plecoBuildCmd)
	plecoCmd.AddCommand(plecoInspectCmd)
	plecoCmd.AddCommand(plecoLookupCmd)

	addTableFlags(plecoBuildCmd, &plecoTables)
	plecoBuildCmd.Flags().StringVarP(&plecoOut, "out", "o", "", "output .pqb file (required)")
	plecoBuildCmd.Flags().StringVar(&plecoBase, "base", "", "existing .pqb to merge entries into")
	plecoBuildCmd.Flags().StringVar(&plecoName, "name", "", "dictionary name shown in Pleco")
	plecoBuildCmd.Flags().StringVar(&plecoMenuName, "menu-name", "", "name shown in Pleco's dictionary menu")
	plecoBuildCmd.Flags().StringVar(&plecoShortName, "short-name", "", "abbreviated dictionary name")
	plecoBuildCmd.Flags().StringVar(&plecoIcon, "icon", "", "two-letter dictionary icon")
	plecoBuildCmd.Flags().StringVar(&plecoCreated, "created", "", "creation time, RFC 3339 (default a fixed epoch)")
	plecoBuildCmd.Flags().StringVar(&plecoSeparator, "separator", pleco.DefaultSeparator, "separator between codes on a definition line")
	plecoBuildCmd.MarkFlagRequired("out")

	plecoInspectCmd.Flags().IntVarP(&plecoInspectLimit, "limit", "n", 5, "Number of sample entries to show")
}

// flagOrConfig prefers an explicitly set flag over the settings file.
func flagOrConfig(cmd *cobra.Command, name, flagVal, cfgVal string) string {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	return cfgVal
}

func runPlecoBuild(cmd *cobra.Command, args []string) error {
	cfg := loadUserConfig()
	plecoTables.applyConfig(cmd, cfg)

	cj3, cj5, err := plecoTables.load()
	if err != nil {
		return err
	}

	sep := plecoSeparator
	if !cmd.Flags().Changed("separator") && cfg.Dictionary.Separator != "" {
		sep = cfg.Dictionary.Separator
	}

	entries := pleco.BuildEntries(cj3, cj5, pleco.NewMerger(pleco.WithSeparator(sep)))
	if len(entries) == 0 {
		return fmt.Errorf("no entries found, check table formats and paths")
	}

	meta := pleco.DefaultMetadata()
	if v := flagOrConfig(cmd, "name", plecoName, cfg.Dictionary.Name); v != "" {
		meta.Name = v
	}
	if v := flagOrConfig(cmd, "menu-name", plecoMenuName, cfg.Dictionary.MenuName); v != "" {
		meta.MenuName = v
	}
	if v := flagOrConfig(cmd, "short-name", plecoShortName, cfg.Dictionary.ShortName); v != "" {
		meta.ShortName = v
	}
	if v := flagOrConfig(cmd, "icon", plecoIcon, cfg.Dictionary.Icon); v != "" {
		meta.Icon = v
	}
	if plecoCreated != "" {
		t, err := time.Parse(time.RFC3339, plecoCreated)
		if err != nil {
			return fmt.Errorf("parsing --created: %w", err)
		}
		meta.CreatedAt = t.Unix()
	}

	var opts []pleco.BuildOption
	if plecoBase != "" {
		opts = append(opts, pleco.WithBase(plecoBase))
	}
	if err := pleco.Build(plecoOut, meta, entries, opts...); err != nil {
		return err
	}

	fmt.Printf("Wrote %s with %d entries.\n", plecoOut, len(entries))
	return nil
}

func runPlecoInspect(cmd *cobra.Command, args []string) error {
	info, err := pleco.Inspect(args[0], plecoInspectLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Dictionary: %s\n", args[0])
	fmt.Printf("Entries: %d\n\n", info.EntryCount)

	props := table.New("Property", "Value").WithWidthFunc(runewidth.StringWidth)
	for _, p := range info.Properties {
		props.AddRow(p.ID, p.Value)
	}
	props.Print()

	if len(info.Entries) > 0 {
		fmt.Printf("\nSample entries (first %d):\n", len(info.Entries))
		samples := table.New("UID", "Word", "Pinyin", "Definition").WithWidthFunc(runewidth.StringWidth)
		for _, e := range info.Entries {
			samples.AddRow(e.UID, e.Word, e.Pron, strings.ReplaceAll(e.Defn, pleco.Newline, " | "))
		}
		samples.Print()
	}

	return nil
}

func runPlecoLookup(cmd *cobra.Command, args []string) error {
	e, err := pleco.Lookup(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("UID:    %d\n", e.UID)
	fmt.Printf("Word:   %s\n", e.Word)
	fmt.Printf("Pinyin: %s\n", e.Pron)
	fmt.Printf("Definition:\n%s\n", strings.ReplaceAll(e.Defn, pleco.Newline, "\n"))
	return nil
}
