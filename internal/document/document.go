// Package document loads a source document, splits off its frontmatter and
// writes the rendered result.
package document

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/frontmatter"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
)

var (
	// ErrNotFound is returned when the source path does not exist.
	ErrNotFound = stderrors.New("document not found")
	// ErrNotFile is returned when the source path is not a regular file.
	ErrNotFile = stderrors.New("document is not a file")
)

// Document is one source file flowing through a conversion.
//
// Body starts as the Markdown body and is replaced by the rendered HTML; Path
// starts as the source path and is replaced by the destination before Write.
// Metadata is never nil.
type Document struct {
	Path     string
	Metadata *metadata.Map
	Body     string

	frontmatter []byte
	markdown    string
	source      string
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapError(ErrNotFound, errors.CategoryNotFound, "document not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot stat document").
			WithContext("path", path).
			Build()
	}
	if !info.Mode().IsRegular() {
		return nil, errors.WrapError(ErrNotFile, errors.CategoryValidation, "document is not a file").
			WithContext("path", path).
			Build()
	}

	// #nosec G304 -- the path is the document the user asked to convert.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", path).
			Build()
	}
	return Parse(path, content)
}

// Parse builds a Document from raw content. Metadata is empty when the
// content carries no frontmatter.
func Parse(path string, content []byte) (*Document, error) {
	parts, err := frontmatter.Split(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFrontmatter, "unterminated frontmatter").
			WithContext("path", path).
			Build()
	}

	meta, err := metadata.Parse(parts.Frontmatter)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryMetadata, "invalid frontmatter metadata").
			WithContext("path", path).
			Build()
	}

	return &Document{
		Path:        path,
		Metadata:    meta,
		Body:        string(parts.Body),
		frontmatter: append([]byte(nil), parts.Frontmatter...),
		markdown:    string(parts.Body),
		source:      path,
	}, nil
}

// Source returns the path the document was loaded from.
func (d *Document) Source() string {
	return d.source
}

// Write stores Body at Path, creating parent directories.
// A failure may leave a partially written file behind.
func (d *Document) Write() error {
	if dir := filepath.Dir(d.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", dir).
				Build()
		}
	}
	// #nosec G306 -- generated pages are meant to be world readable.
	if err := os.WriteFile(d.Path, []byte(d.Body), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write document").
			WithContext("path", d.Path).
			Build()
	}
	return nil
}
