package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"arxivdigest/internal/app"
	"arxivdigest/internal/config"
	"arxivdigest/internal/logging"
)

// CLI defines the command-line surface for Kong.
type CLI struct {
	Config string `help:"Path to the config file (YAML or JSON)." default:"config.yaml" type:"path"`
	Output string `help:"Output HTML file path; overrides the config." placeholder:"PATH"`
	Date   string `help:"Target date in YYYY-MM-DD format; defaults to today." placeholder:"DATE"`
	Source string `help:"Restrict the run to a single configured source key." placeholder:"KEY"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("arxivdigest"),
		kong.Description("Generate a daily arXiv digest webpage."),
	)

	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, "arxivdigest:", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.Output != "" {
		cfg.Output.Path = cli.Output
	}
	if cli.Source != "" {
		var kept []config.SourceConfig
		for _, src := range cfg.Sources {
			if src.Key == cli.Source {
				kept = append(kept, src)
			}
		}
		if len(kept) == 0 {
			return fmt.Errorf("unknown source %q", cli.Source)
		}
		cfg.Sources = kept
	}

	day := time.Now().UTC()
	if cli.Date != "" {
		day, err = time.Parse("2006-01-02", cli.Date)
		if err != nil {
			return fmt.Errorf("invalid date format: expected YYYY-MM-DD")
		}
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Run(context.Background(), day); err != nil {
		logger.Error("digest run failed", "error", err)
		return err
	}
	return nil
}
