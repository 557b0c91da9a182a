package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsangkit/cjdict/internal/unihan"
)

var unihanCmd = &cobra.Command{
	Use:   "unihan",
	Short: "Annotate text with kCangjie readings",
	Long:  `Commands built on the Unihan database's kCangjie field, cached locally in SQLite.`,
}

var unihanAnnotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate pasted text or a CSV file",
	Long: `Annotate Chinese text with kCangjie readings.

Paste mode replaces each input line with the readings of its Han
characters. CSV mode copies the file, filling a reading column from a
source column matched by header name. In both modes a run of
consecutive blank inputs ends processing, so pasted text with trailing
empty lines terminates cleanly.

Readings come from a local SQLite cache, filled on demand from a Unihan
database file when --unihan points at one.

Examples:
  cjdict unihan annotate --mode paste --unihan Unihan_DictionaryLikeData.txt < words.txt
  cjdict unihan annotate --mode csv --in vocab.csv --out vocab_cj.csv --source-col word`,
	RunE: runUnihanAnnotate,
}

var (
	unihanMode         string
	unihanIn           string
	unihanOut          string
	unihanSourceCol    string
	unihanOutCol       string
	unihanRender       string
	unihanStopAfter    int
	unihanCacheDB      string
	unihanDB           string
	unihanRefreshEmpty bool
)

func init() {
	rootCmd.AddCommand(unihanCmd)
	unihanCmd.AddCommand(unihanAnnotateCmd)

	unihanAnnotateCmd.Flags().StringVar(&unihanMode, "mode", "", "paste or csv (required)")
	unihanAnnotateCmd.Flags().StringVar(&unihanIn, "in", "", "input file (default stdin)")
	unihanAnnotateCmd.Flags().StringVar(&unihanOut, "out", "", "output file (default stdout)")
	unihanAnnotateCmd.Flags().StringVar(&unihanSourceCol, "source-col", "", "CSV column holding the Chinese text")
	unihanAnnotateCmd.Flags().StringVar(&unihanOutCol, "out-col", "kCangjie", "CSV column to fill")
	unihanAnnotateCmd.Flags().StringVar(&unihanRender, "render", "prompts", "reading rendering: latin, prompts or both")
	unihanAnnotateCmd.Flags().IntVar(&unihanStopAfter, "stop-after", 3, "stop after this many consecutive blank inputs (0 disables)")
	unihanAnnotateCmd.Flags().StringVar(&unihanCacheDB, "cache-db", "unihan_cache.sqlite", "reading cache database")
	unihanAnnotateCmd.Flags().StringVar(&unihanDB, "unihan", "", "Unihan database file to resolve misses from")
	unihanAnnotateCmd.Flags().BoolVar(&unihanRefreshEmpty, "refresh-empty", false, "re-resolve characters cached without a reading")
	unihanAnnotateCmd.MarkFlagRequired("mode")
}

func runUnihanAnnotate(cmd *cobra.Command, args []string) error {
	cfg := loadUserConfig()

	mode, err := unihan.ParseRenderMode(unihanRender)
	if err != nil {
		return err
	}

	cachePath := flagOrConfig(cmd, "cache-db", unihanCacheDB, cfg.Unihan.CacheDB)
	if cachePath == "" {
		cachePath = unihanCacheDB
	}
	cache, err := unihan.OpenCache(cachePath)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer cache.Close()

	ann := &unihan.Annotator{
		Cache:        cache,
		Mode:         mode,
		RefreshEmpty: unihanRefreshEmpty,
		StopAfter:    unihanStopAfter,
	}

	if dbPath := flagOrConfig(cmd, "unihan", unihanDB, cfg.Unihan.Database); dbPath != "" {
		src, err := unihan.LoadFileSource(dbPath)
		if err != nil {
			return fmt.Errorf("loading Unihan data: %w", err)
		}
		ann.Source = src
		if verbose() {
			fmt.Fprintf(os.Stderr, "Loaded %d kCangjie readings from %s\n", src.Len(), dbPath)
		}
	}

	var in io.Reader = os.Stdin
	if unihanIn != "" {
		f, err := os.Open(unihanIn)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var out io.Writer = os.Stdout
	if unihanOut != "" {
		f, err := os.Create(unihanOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch unihanMode {
	case "paste":
		err = ann.AnnotateLines(in, out)
	case "csv":
		if unihanSourceCol == "" {
			return fmt.Errorf("csv mode needs --source-col")
		}
		err = ann.AnnotateCSV(in, out, unihanSourceCol, unihanOutCol)
	default:
		return fmt.Errorf("unknown mode %q, want paste or csv", unihanMode)
	}
	if err != nil {
		return err
	}

	if verbose() {
		fmt.Fprintf(os.Stderr, "Cache hits: %d, misses: %d\n", ann.Hits, ann.Misses)
	}
	return nil
}
