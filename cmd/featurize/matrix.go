package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/encoder"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

var (
	flagMatrixSplit   string
	flagMatrixSummary bool
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Encode a corpus split as a sparse document-by-feature matrix",
	Long: `matrix fits the feature vocabulary on the training split and writes the
chosen split as "row col value" triplets, one non-zero entry per line.`,
	Args: cobra.NoArgs,
	RunE: runMatrixCmd,
}

func init() {
	matrixCmd.Flags().StringVar(&flagMatrixSplit, "split", "testing", "Split to encode: training or testing")
	matrixCmd.Flags().BoolVar(&flagMatrixSummary, "summary", false, "Print shape, non-zeros and sum only")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrixCmd(cmd *cobra.Command, _ []string) error {
	if flagMatrixSplit != "training" && flagMatrixSplit != "testing" {
		return apperrors.Newf(apperrors.ErrInvalidInput, "unknown split %q", flagMatrixSplit)
	}
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
	target := testing
	if flagMatrixSplit == "training" {
		target = training
	}
	tok, err := buildTokenizer(cfg.Features)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	f := cfg.Features
	switch f.Extractor {
	case "vocabulary":
		ext := memoize[*features.Vocabulary](rt, features.NewVocabularyExtractor(tok))
		return writeMatrix(ctx, rt, ext, training, target, out)
	case "frequencies":
		ext := memoize[*features.Frequencies](rt, features.NewFrequencyExtractor(tok))
		return writeMatrix(ctx, rt, ext, training, target, out)
	case "entropies":
		inner, err := entropiesExtractor(f, tok)
		if err != nil {
			return err
		}
		return writeMatrix(ctx, rt, memoize[*features.Entropies](rt, inner), training, target, out)
	case "pairwise":
		inner, err := pairwiseExtractor(f, tok)
		if err != nil {
			return err
		}
		return writeMatrix(ctx, rt, memoize[*features.PairwiseAssociation](rt, inner), training, target, out)
	default:
		return apperrors.Newf(apperrors.ErrConfiguration, "unknown extractor %q", f.Extractor)
	}
}

func writeMatrix[S encoder.Encodable[S]](ctx context.Context, rt *runtime, ext features.Extractor[S], training, target *corpus.Collection, out io.Writer) error {
	me, err := encoder.NewMatrixExtractor(ctx, ext, training, rt.options(cfg.Features.Extractor), rt.vocabularyOptions()...)
	if err != nil {
		return fmt.Errorf("fitting vocabulary: %w", err)
	}
	m, err := me.Encode(ctx, target)
	if err != nil {
		return fmt.Errorf("encoding %s split: %w", flagMatrixSplit, err)
	}
	rows, cols := m.Shape()
	slog.Info("matrix encoded", "rows", rows, "cols", cols, "nnz", m.NNZ())

	if flagMatrixSummary {
		_, err := fmt.Fprintf(out, "shape=(%d,%d) nnz=%d sum=%.6g\n", rows, cols, m.NNZ(), m.Sum())
		return err
	}
	for i := range rows {
		idx, vals, err := m.Row(i)
		if err != nil {
			return err
		}
		for k, j := range idx {
			if _, err := fmt.Fprintf(out, "%d %d %.10g\n", i, j, vals[k]); err != nil {
				return err
			}
		}
	}
	return nil
}
