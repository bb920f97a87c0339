package storage

import (
	"errors"
	"strings"

	sent "github.com/revelaction/tei2conllu/sentence"
)

// DocReader defines read operations for converted documents
type DocReader interface {
	// List returns the metadata (Id, Title) of documents. Sentences are not
	// loaded.
	List() ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)
}

// DocWriter defines write operations for converted documents
type DocWriter interface {
	// Write persists a document and its sentences
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// LemmaFinder is implemented by repositories indexing sentences by lemma.
type LemmaFinder interface {
	// FindLemma calls onSentence for every stored sentence containing lemma.
	FindLemma(lemma string, onSentence func(sent.Sentence) error) error
}

// Locator is implemented by writers that can name the destination of a
// document given its source path.
type Locator interface {
	Path(source string) string
}

type multiWriter []DocWriter

// MultiWriter returns a DocWriter that writes each document to all writers in
// order. All writers are attempted; their errors are joined.
func MultiWriter(writers ...DocWriter) DocWriter {
	return multiWriter(writers)
}

func (mw multiWriter) Write(doc sent.Doc) error {
	var errs []error
	for _, w := range mw {
		if err := w.Write(doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Path joins the destinations of the writers that name one.
func (mw multiWriter) Path(source string) string {
	var paths []string
	for _, w := range mw {
		if l, ok := w.(Locator); ok {
			paths = append(paths, l.Path(source))
		}
	}
	return strings.Join(paths, ",")
}
