// Package main provides the atlasfit CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atlascommand/atlasfit/pkg/config"
	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "atlasfit",
		Short: "Driver-load fit scoring for Atlas Command",
		Long: `Atlasfit scores freight loads against driver preference profiles and
explains each score with a category breakdown and plain-language reasons.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newRankCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildEngine constructs a scoring engine from an explicit config path, a
// discovered .atlasfit/config.yaml, or the built-in defaults.
func buildEngine(configPath string) (*fitscore.Engine, error) {
	if configPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			configPath = config.FindConfigFile(cwd)
		}
	}
	if configPath == "" {
		return fitscore.DefaultEngine(), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg.Engine(), nil
}
