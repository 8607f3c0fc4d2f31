package corpus

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// LoadFile reads a plain, gzipped or single-entry zipped book.
func LoadFile(path string) (*Book, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasSuffix(path, ".txt"):
		data, err = os.ReadFile(path)
	case strings.HasSuffix(path, ".gz"):
		data, err = readGzip(path)
	case strings.HasSuffix(path, ".zip"):
		data, err = readZip(path)
	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "unknown book extension for %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading book %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return ParseBook(text, path)
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func readZip(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	if len(zr.File) != 1 {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "zip archive must hold exactly one book, found %d entries", len(zr.File))
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// LoadDir loads every book file directly under dir in file name order.
// Files with other extensions are skipped.
func LoadDir(dir string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing corpus directory: %w", err)
	}
	logger := slog.Default().With("component", "corpus-loader")

	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !isBookFile(e.Name()) {
			continue
		}
		book, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, book)
	}
	coll, err := NewCollection(docs...)
	if err != nil {
		return nil, err
	}
	logger.Info("corpus loaded", "dir", dir, "books", coll.Len(), "authors", len(coll.Authors()))
	return coll, nil
}

func isBookFile(name string) bool {
	for _, ext := range []string{".txt", ".gz", ".zip"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
