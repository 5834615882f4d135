package main

import (
	"fmt"
	"os"

	"github.com/ruminaider/presetctl/internal/config"
	"github.com/ruminaider/presetctl/internal/paths"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "presetctl",
	Short: "Detect deployable projects and pick their build preset",
	Long: "presetctl scans a repository for deployable projects, lets you pick a (preset, path) pair " +
		"and stores the resulting root directory in .presetctl.yaml.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show status
		return statusCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("presetctl %s\n", version)
	},
}

// loadConfig reads ~/.presetctl/config.yaml.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("loaded config", zap.String("path", paths.ConfigFile()), zap.Int("presets", len(cfg.Presets)))
	return cfg, nil
}

// dirArg returns the first positional argument, or ".".
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
