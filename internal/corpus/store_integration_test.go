//go:build integration

// Run with:
//
//	go test -v -tags=integration ./internal/corpus/...
package corpus

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/postgres"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// skipIfNoPostgres skips the test when PostgreSQL is unavailable.
func skipIfNoPostgres(t *testing.T) *postgres.Client {
	t.Helper()
	cfg := config.PostgresConfig{
		Host:            envOrDefault("TEST_POSTGRES_HOST", "localhost"),
		Port:            envOrDefaultInt("TEST_POSTGRES_PORT", 5432),
		Database:        envOrDefault("TEST_POSTGRES_DB", "authorship_test"),
		User:            envOrDefault("TEST_POSTGRES_USER", "authorship"),
		Password:        envOrDefault("TEST_POSTGRES_PASSWORD", "localdev"),
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnectAttempts: 1,
	}
	db, err := postgres.New(context.Background(), cfg)
	if err != nil {
		t.Skipf("skipping integration test: postgres unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(skipIfNoPostgres(t))
	require.NoError(t, store.EnsureSchema(ctx))

	suffix := strconv.FormatInt(time.Now().UnixNano(), 36)
	author := "Integration " + suffix
	coll, err := NewCollection(
		NewBook("it-1-"+suffix, author, "First", "Some words to classify."),
		NewBook("it-2-"+suffix, author, "Second", "More words about books."),
	)
	require.NoError(t, err)
	require.NoError(t, store.SaveCollection(ctx, coll))

	loaded, err := store.LoadCollection(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, []string{author}, loaded.Authors())
	assert.Equal(t, []string{"it-1-" + suffix, "it-2-" + suffix}, ids(loaded))

	updated := NewBook("it-1-"+suffix, author, "First", "Rewritten.")
	require.NoError(t, store.SaveBook(ctx, updated))
	loaded, err = store.LoadCollection(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, "Rewritten.", loaded.ByAuthor(author)[0].Contents())
}
