// Package convert runs the TEI-XML to CoNLL-U conversion of whole documents.
//
// Each document is parsed entirely, all its sentences are mapped, and only
// then is the result handed to a storage.DocWriter. A document that fails to
// parse produces no output.
package convert

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	sent "github.com/revelaction/tei2conllu/sentence"
	"github.com/revelaction/tei2conllu/storage"
	"github.com/revelaction/tei2conllu/tei"
)

// Converter converts TEI-XML documents. It holds no state between documents.
type Converter struct {
	mapper *tei.Mapper
	logger *slog.Logger
}

// New returns a Converter configured by opts.
func New(opts ...Option) *Converter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Converter{
		mapper: &tei.Mapper{
			Namespace: cfg.namespace,
			Normalize: cfg.normalize,
			Logger:    cfg.logger,
		},
		logger: cfg.logger,
	}
}

// Convert reads a whole TEI-XML document from r and returns its sentences.
// title is recorded as the document title.
func (c *Converter) Convert(r io.Reader, title string) (sent.Doc, error) {
	doc, err := tei.Parse(r)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("%w: %s: %w", ErrParse, title, err)
	}

	if doc.Root() == nil {
		return sent.Doc{}, fmt.Errorf("%w: %s", ErrNoRoot, title)
	}

	sentences := c.mapper.Document(doc)
	if len(sentences) == 0 {
		c.logger.Warn("no sentences found", "path", title)
	}

	return sent.Doc{Title: title, Sentences: sentences}, nil
}

// ConvertFile converts the file at path. The result is returned, and written
// to w if w is not nil.
func (c *Converter) ConvertFile(path string, w storage.DocWriter) (sent.Doc, error) {
	c.logger.Info("start conversion", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, err
	}
	defer f.Close()

	doc, err := c.Convert(f, path)
	if err != nil {
		return sent.Doc{}, err
	}

	c.logger.Info("converted sentences", "path", path, "count", len(doc.Sentences))

	if w == nil {
		return doc, nil
	}

	attrs := []any{"path", path}
	if l, ok := w.(storage.Locator); ok {
		attrs = append(attrs, "output", l.Path(path))
	}
	c.logger.Info("saving results", attrs...)

	if err := w.Write(doc); err != nil {
		return sent.Doc{}, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	return doc, nil
}

// Result is the outcome of one file of a batch.
type Result struct {
	Path string
	Doc  sent.Doc
	Err  error
}

// Batch converts every path independently: a failing file does not stop the
// following ones. onResult, if not nil, is called after each file. The
// returned error joins the errors of all failed files.
func (c *Converter) Batch(paths []string, w storage.DocWriter, onResult func(Result)) error {
	var errs []error
	for i, path := range paths {
		doc, err := c.ConvertFile(path, w)
		doc.Id = i
		if err != nil {
			c.logger.Error("conversion failed", "path", path, "err", err)
			errs = append(errs, err)
		}

		if onResult != nil {
			onResult(Result{Path: path, Doc: doc, Err: err})
		}
	}

	return errors.Join(errs...)
}
