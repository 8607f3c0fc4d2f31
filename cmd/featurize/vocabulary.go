package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/collection"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/features"
)

var flagVocabularyByAuthor bool

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the token vocabulary inferred from the training corpus",
	Args:  cobra.NoArgs,
	RunE:  runVocabulary,
}

func init() {
	vocabularyCmd.Flags().BoolVar(&flagVocabularyByAuthor, "by-author", false, "Print vocabulary sizes per author instead of the tokens")
	rootCmd.AddCommand(vocabularyCmd)
}

func runVocabulary(cmd *cobra.Command, _ []string) error {
	ctx := runContext(cmd.Context())
	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	training, _, err := rt.loadCorpus(ctx)
	if err != nil {
		return err
	}
	tok, err := buildTokenizer(cfg.Features)
	if err != nil {
		return err
	}

	ext := memoize[*features.Vocabulary](rt, features.NewVocabularyExtractor(tok))
	h, err := collection.BuildHierarchical(ctx, training, ext, rt.options("vocabulary"))
	if err != nil {
		return fmt.Errorf("building vocabulary: %w", err)
	}
	slog.Info("vocabulary inferred", "extractor", ext.ID(), "tokens", h.Total().Len())

	out := cmd.OutOrStdout()
	if flagVocabularyByAuthor {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "AUTHOR\tTOKENS")
		for _, author := range h.Authors() {
			v, _ := h.Author(author)
			fmt.Fprintf(tw, "%s\t%d\n", author, v.Len())
		}
		return tw.Flush()
	}
	for _, k := range h.Total().Keys() {
		fmt.Fprintln(out, k.String())
	}
	return nil
}
