// Package cmd contains all CLI commands for the cjdict tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tsangkit/cjdict/internal/cangjie"
	"github.com/tsangkit/cjdict/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cjdict",
	Short: "Build Cangjie input-method dictionaries and study material",
	Long: `cjdict turns Cangjie code tables into Chinese study material.

It reads input-method tables in the common text format, one character
per line with its code:

  日	a
  月	b
  明	ab

and can:
  - Build a Pleco dictionary (.pqb) merging Cangjie3 and Cangjie5 codes
  - Fill Cangjie columns in Anki deck exports and .apkg packages
  - Annotate pasted text or CSV files with kCangjie readings
  - Look up and browse codes interactively

Codes render either as Latin letters (ab) or as the radicals printed on
the keys (日月).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/cjdict)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves the configuration directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
		return
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
		os.Exit(1)
	}
	viper.Set("config_dir", dir)
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadUserConfig reads the settings file, falling back to empty settings
// when none exists.
func loadUserConfig() *config.Config {
	cfg, err := config.LoadConfig(getConfigDir())
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

func verbose() bool {
	return viper.GetBool("verbose")
}

// tableOpts are the Cangjie table flags shared by the commands that
// parse tables.
type tableOpts struct {
	cj3Path   string
	cj5Path   string
	codeFirst bool
	delimiter string
}

func addTableFlags(cmd *cobra.Command, o *tableOpts) {
	cmd.Flags().StringVar(&o.cj3Path, "cj3", "cangjie3.txt", "Cangjie3 table file")
	cmd.Flags().StringVar(&o.cj5Path, "cj5", "cangjie5.txt", "Cangjie5 table file")
	cmd.Flags().BoolVar(&o.codeFirst, "code-first", false, "tables list the code before the character")
	cmd.Flags().StringVar(&o.delimiter, "delimiter", "", "table column delimiter (default any whitespace)")
}

// applyConfig fills table flags the user left untouched from the
// settings file.
func (o *tableOpts) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("cj3") && cfg.Tables.Cangjie3 != "" {
		o.cj3Path = cfg.Tables.Cangjie3
	}
	if !cmd.Flags().Changed("cj5") && cfg.Tables.Cangjie5 != "" {
		o.cj5Path = cfg.Tables.Cangjie5
	}
	if !cmd.Flags().Changed("code-first") && cfg.Tables.CodeFirst {
		o.codeFirst = true
	}
	if !cmd.Flags().Changed("delimiter") && cfg.Tables.Delimiter != "" {
		o.delimiter = cfg.Tables.Delimiter
	}
}

func (o *tableOpts) loadTable(path string, v cangjie.Version) (*cangjie.Table, error) {
	opts := []cangjie.Option{cangjie.WithVersion(v)}
	if o.codeFirst {
		opts = append(opts, cangjie.WithCodeFirst())
	}
	if o.delimiter != "" {
		opts = append(opts, cangjie.WithDelimiter(o.delimiter))
	}
	t, err := cangjie.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	if verbose() {
		fmt.Fprintf(os.Stderr, "Loaded %s: %d characters from %s\n", v, t.Len(), path)
	}
	return t, nil
}

func (o *tableOpts) loadCJ3() (*cangjie.Table, error) {
	return o.loadTable(o.cj3Path, cangjie.Version3)
}

func (o *tableOpts) loadCJ5() (*cangjie.Table, error) {
	return o.loadTable(o.cj5Path, cangjie.Version5)
}

// load reads both tables.
func (o *tableOpts) load() (cj3, cj5 *cangjie.Table, err error) {
	if cj3, err = o.loadCJ3(); err != nil {
		return nil, nil, err
	}
	if cj5, err = o.loadCJ5(); err != nil {
		return nil, nil, err
	}
	return cj3, cj5, nil
}
