package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
    id       TEXT PRIMARY KEY,
    author   TEXT NOT NULL,
    title    TEXT NOT NULL,
    contents TEXT NOT NULL,
    path     TEXT NOT NULL DEFAULT '',
    added_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS books_author_idx ON books (author);
`

// Store keeps books in PostgreSQL.
//
// It uses a `books` table created by EnsureSchema.
type Store struct {
	db     *postgres.Client
	logger *slog.Logger
}

func NewStore(db *postgres.Client) *Store {
	return &Store{
		db:     db,
		logger: slog.Default().With("component", "corpus-store"),
	}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating books schema: %w", err)
	}
	return nil
}

// SaveBook inserts or replaces a book by id.
func (s *Store) SaveBook(ctx context.Context, b *Book) error {
	_, err := s.db.DB.ExecContext(ctx,
		`INSERT INTO books (id, author, title, contents, path) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET author = EXCLUDED.author, title = EXCLUDED.title,
		     contents = EXCLUDED.contents, path = EXCLUDED.path`,
		b.ID(), b.Author(), b.Title(), b.Contents(), b.Path(),
	)
	if err != nil {
		return fmt.Errorf("saving book %s: %w", b.ID(), err)
	}
	return nil
}

// SaveCollection stores every book of coll in one transaction. Documents
// that are not books are skipped.
func (s *Store) SaveCollection(ctx context.Context, coll *Collection) error {
	saved := 0
	err := s.db.InTx(ctx, func(tx *sql.Tx) error {
		for _, d := range coll.Documents() {
			b, ok := d.(*Book)
			if !ok {
				continue
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO books (id, author, title, contents, path) VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (id) DO NOTHING`,
				b.ID(), b.Author(), b.Title(), b.Contents(), b.Path(),
			)
			if err != nil {
				return fmt.Errorf("saving book %s: %w", b.ID(), err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("collection saved", "books", saved)
	return nil
}

// LoadCollection reads the books of the given authors, or every book when
// no author is named, ordered by id.
func (s *Store) LoadCollection(ctx context.Context, authors ...string) (*Collection, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(authors) == 0 {
		rows, err = s.db.DB.QueryContext(ctx,
			`SELECT id, author, title, contents, path FROM books ORDER BY id`)
	} else {
		rows, err = s.db.DB.QueryContext(ctx,
			`SELECT id, author, title, contents, path FROM books WHERE author = ANY($1) ORDER BY id`,
			pq.Array(authors),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(&b.id, &b.author, &b.title, &b.contents, &b.path); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		docs = append(docs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating book rows: %w", err)
	}
	s.logger.Debug("collection loaded", "books", len(docs))
	return newCollection(docs), nil
}
