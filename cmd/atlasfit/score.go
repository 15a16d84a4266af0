package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
	"github.com/atlascommand/atlasfit/pkg/surface"
)

func newScoreCmd() *cobra.Command {
	var (
		profilePath string
		loadPath    string
		configPath  string
		outputFmt   string
		savePath    string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one load against a driver profile",
		Long:  `Reads a driver preference profile and a load record, runs the fit engine, and renders the scored result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(scoreOpts{
				profilePath: profilePath,
				loadPath:    loadPath,
				configPath:  configPath,
				outputFmt:   outputFmt,
				savePath:    savePath,
			})
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Path to driver profile JSON (required)")
	cmd.Flags().StringVar(&loadPath, "load", "", "Path to load JSON (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: discover .atlasfit/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json, or note")
	cmd.Flags().StringVar(&savePath, "save", "", "Also write the result JSON to this path")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("load")

	return cmd
}

type scoreOpts struct {
	profilePath string
	loadPath    string
	configPath  string
	outputFmt   string
	savePath    string
}

func runScore(opts scoreOpts) error {
	engine, err := buildEngine(opts.configPath)
	if err != nil {
		return err
	}

	profile, err := fitscore.LoadProfileFile(opts.profilePath)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	load, err := fitscore.LoadLoadFile(opts.loadPath)
	if err != nil {
		return fmt.Errorf("loading load: %w", err)
	}

	result := engine.FitLoadForDriver(profile, load)

	if opts.savePath != "" {
		if err := fitscore.SaveResult(opts.savePath, result); err != nil {
			return fmt.Errorf("saving result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Result saved: %s\n", opts.savePath)
	}

	var renderer surface.Renderer
	switch opts.outputFmt {
	case "json":
		renderer = &surface.JSONRenderer{}
	case "note":
		renderer = &surface.NoteRenderer{}
	default:
		renderer = &surface.TerminalRenderer{}
	}
	if err := renderer.Render(os.Stdout, &result); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	return nil
}
