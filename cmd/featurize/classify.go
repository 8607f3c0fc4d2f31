package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/classify"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/encoder"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

var flagClassifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Attribute the testing books to training authors by nearest centroid",
	Args:  cobra.NoArgs,
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&flagClassifyJSON, "json", false, "Print the result as JSON")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	if err := encodableKind(cfg.Features.Extractor); err != nil {
		return err
	}

	ctx := runContext(cmd.Context())
	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	training, testing, err := rt.loadCorpus(ctx)
	if err != nil {
		return err
	}
	if testing.Len() == 0 {
		return apperrors.New(apperrors.ErrInvalidInput, "no testing books to classify")
	}
	tok, err := buildTokenizer(cfg.Features)
	if err != nil {
		return err
	}

	var result *classify.Result
	f := cfg.Features
	switch f.Extractor {
	case "vocabulary":
		result, err = runExperiment(ctx, rt, memoize[*features.Vocabulary](rt, features.NewVocabularyExtractor(tok)), training, testing)
	case "frequencies":
		result, err = runExperiment(ctx, rt, memoize[*features.Frequencies](rt, features.NewFrequencyExtractor(tok)), training, testing)
	case "entropies":
		inner, buildErr := entropiesExtractor(f, tok)
		if buildErr != nil {
			return buildErr
		}
		result, err = runExperiment(ctx, rt, memoize[*features.Entropies](rt, inner), training, testing)
	case "pairwise":
		inner, buildErr := pairwiseExtractor(f, tok)
		if buildErr != nil {
			return buildErr
		}
		result, err = runExperiment(ctx, rt, memoize[*features.PairwiseAssociation](rt, inner), training, testing)
	default:
		return apperrors.Newf(apperrors.ErrConfiguration, "unknown extractor %q", f.Extractor)
	}
	if err != nil {
		return err
	}

	slog.Info("classification finished", "correct", result.Correct, "accuracy", result.Accuracy)
	return writeResult(cmd.OutOrStdout(), result, flagClassifyJSON)
}

func runExperiment[S encoder.Encodable[S]](ctx context.Context, rt *runtime, ext features.Extractor[S], training, testing *corpus.Collection) (*classify.Result, error) {
	exp := &classify.Experiment[S]{
		Extractor:  ext,
		Training:   training,
		Testing:    testing,
		Model:      classify.NewNearestCentroid(),
		Options:    rt.options(cfg.Features.Extractor),
		Vocabulary: rt.vocabularyOptions(),
	}
	return exp.Run(ctx)
}

func writeResult(out io.Writer, result *classify.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tACTUAL\tPREDICTED")
	for _, p := range result.Predictions {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.DocumentID, p.Actual, p.Predicted)
	}
	fmt.Fprintf(tw, "\naccuracy\t%d/%d\t%.4f\n", result.Correct, len(result.Predictions), result.Accuracy)
	return tw.Flush()
}
