package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
	"github.com/atlascommand/atlasfit/pkg/surface"
)

func newRankCmd() *cobra.Command {
	var (
		profilePath string
		loadsPath   string
		configPath  string
		outputFmt   string
		top         int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a board of loads for a driver",
		Long:  `Scores every load in a board file against a driver profile and prints them best fit first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(rankOpts{
				profilePath: profilePath,
				loadsPath:   loadsPath,
				configPath:  configPath,
				outputFmt:   outputFmt,
				top:         top,
			})
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Path to driver profile JSON (required)")
	cmd.Flags().StringVar(&loadsPath, "loads", "", "Path to load board JSON (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: discover .atlasfit/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().IntVar(&top, "top", 0, "Only show the best N loads (0 = all)")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("loads")

	return cmd
}

type rankOpts struct {
	profilePath string
	loadsPath   string
	configPath  string
	outputFmt   string
	top         int
}

func runRank(opts rankOpts) error {
	engine, err := buildEngine(opts.configPath)
	if err != nil {
		return err
	}

	profile, err := fitscore.LoadProfileFile(opts.profilePath)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	loads, err := fitscore.LoadLoadsFile(opts.loadsPath)
	if err != nil {
		return fmt.Errorf("loading loads: %w", err)
	}

	results := make([]fitscore.FitResult, 0, len(loads))
	for _, load := range loads {
		results = append(results, engine.FitLoadForDriver(profile, load))
	}
	sortRanking(results)

	if opts.top > 0 && opts.top < len(results) {
		results = results[:opts.top]
	}

	if opts.outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}

	renderer := &surface.TerminalRenderer{}
	if err := renderer.RenderRanking(os.Stdout, profile.DriverID, results); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

// sortRanking orders results best score first, load ID breaking ties.
func sortRanking(results []fitscore.FitResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].LoadID < results[j].LoadID
	})
}
