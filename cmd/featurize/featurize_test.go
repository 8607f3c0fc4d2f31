package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/classify"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

func writeBook(t *testing.T, dir, name, title, author, body string) {
	t.Helper()
	text := "Title: " + title + "\nAuthor: " + author + "\n\n" + body + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
}

// corpusConfig lays out two training and two testing books and returns the
// path of a config file pointing at them.
func corpusConfig(t *testing.T, extra string) string {
	t.Helper()
	root := t.TempDir()
	trainDir := filepath.Join(root, "train")
	testDir := filepath.Join(root, "test")
	require.NoError(t, os.MkdirAll(trainDir, 0o755))
	require.NoError(t, os.MkdirAll(testDir, 0o755))

	writeBook(t, trainDir, "book_1.txt", "How to model classification", "Myself", "This is a text about how to classify books.")
	writeBook(t, trainDir, "book_2.txt", "Animals of the mountains", "Someone", "A book about how animals survive in extreme environments.")
	writeBook(t, testDir, "book_3.txt", "Another of my books", "Myself", "To classify a book, try processing the text and doing some math.")
	writeBook(t, testDir, "book_4.txt", "Animals of the ocean", "Someone", "The best book describing how animals adapt to survive at the bottom of the sea.")

	path := filepath.Join(root, "config.yaml")
	yaml := "logging:\n  level: error\ncorpus:\n  trainingDir: " + trainDir + "\n  testingDir: " + testDir + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagExtractor, flagTokenizer, flagWorkers = "", "", 0
		flagPrune = nil
		flagMatrixSummary, flagClassifyJSON = false, false
		flagMatrixSplit, flagExtractLevel = "testing", "author"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyAttributesHeldOutBooks(t *testing.T) {
	path := corpusConfig(t, "")
	out, err := execute(t, "--config", path, "classify", "--json")
	require.NoError(t, err)

	var res classify.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []classify.Prediction{
		{DocumentID: "book_3", Actual: "Myself", Predicted: "Myself"},
		{DocumentID: "book_4", Actual: "Someone", Predicted: "Someone"},
	}, res.Predictions)
	assert.Equal(t, 1.0, res.Accuracy)
}

func TestMatrixSummary(t *testing.T) {
	path := corpusConfig(t, "cache:\n  backend: memory\n")
	out, err := execute(t, "--config", path, "matrix", "--summary", "--workers", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "shape=(2,"), out)
}

func TestMatrixPrunesVocabulary(t *testing.T) {
	// Every training token occurs once or twice, so no count lies strictly
	// inside any quantile band and the pruned vocabulary is empty.
	path := corpusConfig(t, "")
	out, err := execute(t, "--config", path, "--prune", "0.05,0.95", "matrix", "--summary")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "shape=(2,0) nnz=0"), out)
}

func TestInvalidPruneConfigRejected(t *testing.T) {
	path := corpusConfig(t, "features:\n  prune: [0.9, 0.1]\n")
	_, err := execute(t, "--config", path, "matrix", "--summary")
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestMatrixRejectsSeries(t *testing.T) {
	path := corpusConfig(t, "")
	_, err := execute(t, "--config", path, "--extractor", "series", "matrix")
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
}

func TestExtractWritesOneLinePerAuthor(t *testing.T) {
	path := corpusConfig(t, "")
	out, err := execute(t, "--config", path, "--extractor", "series", "extract")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	var rec struct {
		Level string `json:"level"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "author", rec.Level)
	assert.Equal(t, "Myself", rec.Name)
}

func TestVocabularyListsTokens(t *testing.T) {
	path := corpusConfig(t, "")
	out, err := execute(t, "--config", path, "vocabulary")
	require.NoError(t, err)
	tokens := strings.Fields(out)
	assert.Contains(t, tokens, "classify")
	assert.Contains(t, tokens, "animals")
	assert.NotContains(t, tokens, "ocean", "testing books do not feed the vocabulary")
}

func TestBuildTokenizer(t *testing.T) {
	base := config.FeaturesConfig{Vocabulary: []string{"book", "animals"}, FillToken: "<unk>", HashBuckets: 8}

	cases := map[string]string{
		"basic":      "Basic",
		"stemming":   "Stemming",
		"filtering":  "Filtering",
		"collapsing": "Collapsing",
		"hashing":    "Hashing",
	}
	for name, prefix := range cases {
		t.Run(name, func(t *testing.T) {
			f := base
			f.Tokenizer = name
			tok, err := buildTokenizer(f)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(tok.ID(), prefix), tok.ID())
		})
	}

	f := base
	f.Tokenizer = "collapsing"
	f.FillToken = "book"
	_, err := buildTokenizer(f)
	assert.Error(t, err, "fill token inside the vocabulary")

	f = base
	f.Tokenizer = "hashing"
	f.HashBuckets = 0
	_, err = buildTokenizer(f)
	assert.Error(t, err)
}

func TestHoldOutKeepsTrainingAuthors(t *testing.T) {
	var docs []corpus.Document
	for _, b := range []struct{ id, author string }{
		{"a1", "A"}, {"a2", "A"}, {"a3", "A"}, {"b1", "B"}, {"b2", "B"}, {"c1", "C"},
	} {
		docs = append(docs, corpus.NewBook(b.id, b.author, b.id, "text"))
	}
	all, err := corpus.NewCollection(docs...)
	require.NoError(t, err)

	training, testing := holdOut(all, 1, 42)
	assert.Equal(t, 2, testing.Len())
	assert.Equal(t, 3, training.Len())
	assert.ElementsMatch(t, []string{"A", "B"}, testing.Authors())
	assert.ElementsMatch(t, []string{"A", "B"}, training.Authors(), "single-book authors are dropped")

	again, _ := holdOut(all, 1, 42)
	assert.Equal(t, training.Documents(), again.Documents())

	training, testing = holdOut(all, 0, 42)
	assert.Equal(t, 6, training.Len())
	assert.Zero(t, testing.Len())
}

func TestEncodableKind(t *testing.T) {
	assert.NoError(t, encodableKind("frequencies"))
	assert.True(t, errors.Is(encodableKind("series"), apperrors.ErrConfiguration))
}

func TestPrintEventRoundTripsPayload(t *testing.T) {
	var out bytes.Buffer
	handle := printEvent(&out)
	payload := `{"document_id":"book_1","author":"Myself","extractor_id":"Frequencies(Basic)","features":9,"total_counts":9,"extracted_at":"2026-01-02T03:04:05Z"}`
	require.NoError(t, handle(context.Background(), []byte("book_1"), []byte(payload)))
	assert.JSONEq(t, payload, out.String())

	assert.Error(t, handle(context.Background(), nil, []byte("{")))
}
