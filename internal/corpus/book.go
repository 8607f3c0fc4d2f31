// Package corpus supplies the documents the feature engine reads: books
// parsed from Project Gutenberg style text, grouped by author into
// collections, loaded from disk or from PostgreSQL.
package corpus

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/Adithya-Monish-Kumar-K/Authorship-Feature-Engine/pkg/errors"
)

// Document is the unit of extraction. The engine treats Author purely as a
// grouping key and never normalises it.
type Document interface {
	ID() string
	Author() string
	Contents() string
}

// Book is a Document with a title and an optional source path.
type Book struct {
	id       string
	author   string
	title    string
	contents string
	path     string
}

func NewBook(id, author, title, contents string) *Book {
	return &Book{id: id, author: author, title: title, contents: contents}
}

func (b *Book) ID() string       { return b.id }
func (b *Book) Author() string   { return b.author }
func (b *Book) Title() string    { return b.title }
func (b *Book) Contents() string { return b.contents }
func (b *Book) Path() string     { return b.path }

var (
	authorHeader = regexp.MustCompile(`Author:\s+(.+)`)
	titleHeader  = regexp.MustCompile(`Title:\s+(.+)`)
)

// ParseBook reads the Author and Title header lines of a book. The whole
// text, headers included, becomes the contents. The id is the file name
// without extensions when path is set, the title otherwise.
func ParseBook(text, path string) (*Book, error) {
	author, ok := header(authorHeader, text)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "missing Author header in %q", describePath(path))
	}
	title, ok := header(titleHeader, text)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, "missing Title header in %q", describePath(path))
	}
	id := title
	if path != "" {
		id = bookID(path)
	}
	return &Book{id: id, author: author, title: title, contents: text, path: path}, nil
}

func header(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := strings.TrimRightFunc(m[1], unicode.IsSpace)
	return v, v != ""
}

func bookID(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}

func describePath(path string) string {
	if path == "" {
		return "<memory>"
	}
	return path
}
