package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/postgres"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Load the books in a directory into the Postgres book store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := runContext(cmd.Context())

	coll, err := corpus.LoadDir(args[0])
	if err != nil {
		return err
	}
	db, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	store := corpus.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("preparing schema: %w", err)
	}
	if err := store.SaveCollection(ctx, coll); err != nil {
		return err
	}
	slog.Info("books imported", "dir", args[0], "books", coll.Len(), "authors", len(coll.Authors()))
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d books by %d authors\n", coll.Len(), len(coll.Authors()))
	return nil
}
