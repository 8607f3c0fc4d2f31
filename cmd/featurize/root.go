package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/logger"
)

var (
	flagConfigPath string
	flagExtractor  string
	flagTokenizer  string
	flagWorkers    int
	flagPrune      []float64
)

// cfg is populated by the persistent pre-run hook before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "featurize",
	Short:        "Extract authorship features from a corpus of books",
	SilenceUsage: true,
	Long: `featurize tokenizes books, extracts per-document feature sets, rolls
them up per author and encodes them as sparse matrices for attribution
experiments.`,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagExtractor, "extractor", "", "override features.extractor")
	rootCmd.PersistentFlags().StringVar(&flagTokenizer, "tokenizer", "", "override features.tokenizer")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "override features.workers")
	rootCmd.PersistentFlags().Float64SliceVar(&flagPrune, "prune", nil, "keep inferred tokens whose count lies between these low,high quantiles")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagExtractor != "" {
		loaded.Features.Extractor = flagExtractor
	}
	if flagTokenizer != "" {
		loaded.Features.Tokenizer = flagTokenizer
	}
	if flagWorkers > 0 {
		loaded.Features.Workers = flagWorkers
	}
	if len(flagPrune) > 0 {
		loaded.Features.Prune = flagPrune
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	logger.Setup(loaded.Logging.Level, loaded.Logging.Format)
	cfg = loaded
	return nil
}

// Execute is called by main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
