package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tsangkit/cjdict/internal/config"
	"github.com/tsangkit/cjdict/internal/pleco"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cjdict configuration",
	Long: `Write a settings file with the default table paths and dictionary
metadata to the config directory. Edit it to point at your table files.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	path := filepath.Join(configDir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("settings file already exists: %s\nUse --force to overwrite", path)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	meta := pleco.DefaultMetadata()
	cfg := &config.Config{
		Tables: config.Tables{
			Cangjie3: "cangjie3.txt",
			Cangjie5: "cangjie5.txt",
		},
		Dictionary: config.Dictionary{
			Name:      meta.Name,
			MenuName:  meta.MenuName,
			ShortName: meta.ShortName,
			Icon:      meta.Icon,
			Separator: pleco.DefaultSeparator,
		},
		Unihan: config.Unihan{
			CacheDB: "unihan_cache.sqlite",
		},
	}
	if err := config.SaveConfig(configDir, cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the file to point at your Cangjie table files")
	fmt.Println("  2. Run 'cjdict lookup <character>' to test a lookup")
	fmt.Println("  3. Run 'cjdict pleco build -o cangjie.pqb' to build a dictionary")

	return nil
}
