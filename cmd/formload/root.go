// Root command for the formload CLI.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dukaforge/formload/internal/paths"
	"github.com/dukaforge/formload/pkg/formload"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// configDataDir and configPreset hold values loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use them.
var (
	configDataDir string
	configPreset  string
)

// logger is shared by all subcommands; level follows --verbose.
var logger = log.New(os.Stderr)

var rootCmd = &cobra.Command{
	Use:   "formload",
	Short: "Formload extracts canonical records from annotated datasets",
	Long: `Formload walks a dataset directory, matches its files and their
contents against a declared form, and consolidates everything it
extracts into one canonical record per unique entity.`,
	Version:       formload.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.WarnLevel)
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configPreset = cfg.GetString(cfgKeyPreset)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory for exports (default: $(CWD)/.formload-out)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(presetsCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > FORMLOAD_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence chain:
// --data-dir flag > config.yaml data_dir > FORMLOAD_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
