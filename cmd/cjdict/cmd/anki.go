package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/tsangkit/cjdict/internal/anki"
)

var ankiCmd = &cobra.Command{
	Use:   "anki",
	Short: "Work with Anki decks and exports",
	Long:  `Commands for filling Cangjie codes into Anki deck exports and .apkg packages.`,
}

var ankiInspectCmd = &cobra.Command{
	Use:   "inspect <file.apkg>",
	Short: "Inspect an Anki deck",
	Long: `Inspect an Anki .apkg file to see its structure:
  - Decks
  - Note types (models) and their fields
  - Sample notes

Example:
  cjdict anki inspect chinese.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiInspect,
}

var ankiFillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill Cangjie columns in a deck export",
	Long: `Rewrite a tab-separated Anki export, filling Cangjie code columns
from a source column of Chinese text. Column numbers are 1-based, the
way Anki's import dialog counts them. Header lines starting with "#"
pass through unchanged.

Examples:
  cjdict anki fill --in export.txt --out filled.txt --source-col 1 --cj5-col 3
  cjdict anki fill --in export.txt --out filled.txt --source-col 2 --cj3-col 4 --cj5-col 5 --output codes`,
	RunE: runAnkiFill,
}

var ankiAugmentCmd = &cobra.Command{
	Use:   "augment <file.apkg>",
	Short: "Add Cangjie fields to an Anki package",
	Long: `Read an Anki deck, find the field holding Chinese text, and write a
new .apkg whose notes carry three extra fields:
  - Cangjie3      Latin codes per the Cangjie3 table
  - Cangjie5      Latin codes per the Cangjie5 table
  - CangjieKeys   the radicals printed on the keys

Examples:
  cjdict anki augment chinese.apkg
  cjdict anki augment chinese.apkg --field Hanzi -o chinese_cj.apkg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnkiAugment,
}

var (
	ankiInspectLimit int

	ankiFillTables    tableOpts
	ankiFillIn        string
	ankiFillOut       string
	ankiFillSourceCol int
	ankiFillCJ3Col    int
	ankiFillCJ5Col    int
	ankiFillOutput    string

	ankiAugmentTables tableOpts
	ankiAugmentField  string
	ankiAugmentOut    string
)

func init() {
	rootCmd.AddCommand(ankiCmd)
	ankiCmd.AddCommand(ankiInspectCmd)
	ankiCmd.AddCommand(ankiFillCmd)
	ankiCmd.AddCommand(ankiAugmentCmd)

	ankiInspectCmd.Flags().IntVarP(&ankiInspectLimit, "limit", "n", 5, "Number of sample notes to show")

	addTableFlags(ankiFillCmd, &ankiFillTables)
	ankiFillCmd.Flags().StringVar(&ankiFillIn, "in", "", "deck export to read (required)")
	ankiFillCmd.Flags().StringVar(&ankiFillOut, "out", "", "file to write (required)")
	ankiFillCmd.Flags().IntVar(&ankiFillSourceCol, "source-col", 1, "1-based column holding the Chinese text")
	ankiFillCmd.Flags().IntVar(&ankiFillCJ3Col, "cj3-col", 0, "1-based column to fill with Cangjie3 codes")
	ankiFillCmd.Flags().IntVar(&ankiFillCJ5Col, "cj5-col", 0, "1-based column to fill with Cangjie5 codes")
	ankiFillCmd.Flags().StringVar(&ankiFillOutput, "output", "prompts", "code rendering: codes (Latin) or prompts (radicals)")
	ankiFillCmd.MarkFlagRequired("in")
	ankiFillCmd.MarkFlagRequired("out")

	addTableFlags(ankiAugmentCmd, &ankiAugmentTables)
	ankiAugmentCmd.Flags().StringVarP(&ankiAugmentField, "field", "f", "", "Field name containing Chinese text (auto-detect if not specified)")
	ankiAugmentCmd.Flags().StringVarP(&ankiAugmentOut, "out", "o", "", "Output .apkg file (default <input>_cangjie.apkg)")
}

func runAnkiInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	fmt.Printf("Opening: %s\n\n", path)

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	fmt.Print(pkg.Summary())
	fmt.Println()

	fmt.Println("Field Details:")
	for _, model := range pkg.Models {
		fmt.Printf("  %s:\n", model.Name)
		for _, field := range model.Fields {
			fmt.Printf("    [%d] %s\n", field.Ord, field.Name)
		}
	}
	fmt.Println()

	fmt.Printf("Sample Notes (first %d):\n", ankiInspectLimit)
	count := 0
	for _, note := range pkg.Notes {
		if count >= ankiInspectLimit {
			break
		}

		model := pkg.GetModel(note)
		modelName := "unknown"
		if model != nil {
			modelName = model.Name
		}

		fmt.Printf("\n  Note %d (Model: %s):\n", note.ID, modelName)
		for _, name := range pkg.GetFieldNames(note) {
			value := runewidth.Truncate(pkg.GetPlainFieldValue(note, name), 60, "...")
			fmt.Printf("    %s: %s\n", name, value)
		}
		count++
	}

	return nil
}

func runAnkiFill(cmd *cobra.Command, args []string) error {
	cfg := loadUserConfig()
	ankiFillTables.applyConfig(cmd, cfg)

	var glyphs bool
	switch ankiFillOutput {
	case "codes":
	case "prompts":
		glyphs = true
	default:
		return fmt.Errorf("unknown output mode %q, want codes or prompts", ankiFillOutput)
	}

	opts := anki.FillOptions{
		SourceCol: ankiFillSourceCol,
		CJ3Col:    ankiFillCJ3Col,
		CJ5Col:    ankiFillCJ5Col,
		Glyphs:    glyphs,
	}
	var err error
	if opts.CJ3Col > 0 {
		if opts.CJ3, err = ankiFillTables.loadCJ3(); err != nil {
			return err
		}
	}
	if opts.CJ5Col > 0 {
		if opts.CJ5, err = ankiFillTables.loadCJ5(); err != nil {
			return err
		}
	}

	filled, err := anki.FillExport(ankiFillIn, ankiFillOut, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Filled %d rows into %s.\n", filled, ankiFillOut)
	return nil
}

func runAnkiAugment(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := loadUserConfig()
	ankiAugmentTables.applyConfig(cmd, cfg)

	cj3, cj5, err := ankiAugmentTables.load()
	if err != nil {
		return err
	}

	pkg, err := anki.OpenPackage(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer pkg.Close()

	fmt.Fprintf(os.Stderr, "Opened: %s (%d notes)\n", path, len(pkg.Notes))

	fieldName := ankiAugmentField
	if fieldName == "" {
		for _, note := range pkg.Notes {
			if fieldName = pkg.DetectHanziField(note); fieldName != "" {
				break
			}
		}
		if fieldName == "" {
			return fmt.Errorf("could not auto-detect a field with Chinese text. Use --field to specify")
		}
		fmt.Fprintf(os.Stderr, "Auto-detected hanzi field: %s\n", fieldName)
	}

	type update struct {
		note *anki.Note
		data anki.FieldData
	}
	var updates []update
	models := make(map[int64]bool)

	for _, note := range pkg.Notes {
		text := pkg.GetPlainFieldValue(note, fieldName)
		if text == "" {
			continue
		}
		data := anki.FieldData{
			CJ3:  anki.TextCodes(text, cj3, false),
			CJ5:  anki.TextCodes(text, cj5, false),
			Keys: anki.TextKeys(text, cj3, cj5),
		}
		if data.CJ3 == "" && data.CJ5 == "" && data.Keys == "" {
			continue
		}
		updates = append(updates, update{note, data})
		models[note.ModelID] = true
	}

	if len(updates) == 0 {
		return fmt.Errorf("no notes with Chinese text in field %q", fieldName)
	}

	for modelID := range models {
		if err := pkg.AddCangjieFields(modelID); err != nil {
			return fmt.Errorf("adding Cangjie fields: %w", err)
		}
	}
	for _, u := range updates {
		if err := pkg.SetNoteCangjie(u.note, u.data); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not set fields for note %d: %v\n", u.note.ID, err)
		}
	}

	outPath := ankiAugmentOut
	if outPath == "" {
		ext := filepath.Ext(path)
		outPath = strings.TrimSuffix(path, ext) + "_cangjie" + ext
	}
	if err := pkg.SaveAs(outPath); err != nil {
		return fmt.Errorf("saving augmented package: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processed %d notes with Chinese text\n", len(updates))
	fmt.Fprintf(os.Stderr, "Wrote augmented deck to: %s\n", outPath)
	fmt.Fprintf(os.Stderr, "\nNew fields added to notes:\n")
	for _, field := range anki.CangjieFields {
		fmt.Fprintf(os.Stderr, "  - %s\n", field)
	}

	return nil
}
