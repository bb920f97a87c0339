package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/tei2conllu/conllu"
	"github.com/revelaction/tei2conllu/file"
	sent "github.com/revelaction/tei2conllu/sentence"
	"github.com/revelaction/tei2conllu/storage"
)

// ErrSourceOutput is returned when the output path of a document is its
// source path.
var ErrSourceOutput = errors.New("output file would overwrite the source")

// DocStore keeps converted documents as CoNLL-U files next to their source.
type DocStore struct {
	ext string

	docs []sent.Doc
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. Written documents go to
// the source path with its extension replaced by ext. paths are existing
// CoNLL-U files made available to List and Read.
func NewDocStore(ext string, paths ...string) *DocStore {
	docs := make([]sent.Doc, 0, len(paths))
	for i, p := range paths {
		docs = append(docs, sent.Doc{Id: i, Title: p})
	}

	return &DocStore{ext: ext, docs: docs}
}

func (h *DocStore) List() ([]sent.Doc, error) {
	return h.docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	doc, err := ReadDoc(h.docs[id].Title)
	if err != nil {
		return sent.Doc{}, err
	}

	doc.Id = id
	return doc, nil
}

// Write encodes doc and replaces the output file in one rename, so a failed
// write never leaves a truncated file behind.
func (h *DocStore) Write(doc sent.Doc) error {
	path := file.OutputPath(doc.Title, h.ext)
	// case folded for case insensitive filesystems
	if strings.EqualFold(filepath.Clean(path), filepath.Clean(doc.Title)) {
		return fmt.Errorf("%w: %s", ErrSourceOutput, path)
	}
	return WriteFile(path, conllu.Marshal(doc.Sentences))
}

// Path returns the output path of the document with the given source path.
func (h *DocStore) Path(source string) string {
	return file.OutputPath(source, h.ext)
}

// ReadDoc reads a CoNLL-U file.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	sentences, err := conllu.Decode(f)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("CoNLL-U decoding error in %s: %w", path, err)
	}

	return sent.Doc{Title: path, Sentences: sentences}, nil
}

// WriteFile writes data to a temporary file in the directory of path and
// renames it to path, replacing any existing file.
func WriteFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}

	if err = tmp.Chmod(0644); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// StreamStore writes converted documents to a stream, one after the other.
type StreamStore struct {
	w io.Writer
}

var _ storage.DocWriter = (*StreamStore)(nil)
var _ storage.Locator = (*StreamStore)(nil)

func NewStreamStore(w io.Writer) *StreamStore {
	return &StreamStore{w: w}
}

// Path names the stream for any source.
func (s *StreamStore) Path(string) string {
	return "stdout"
}

func (s *StreamStore) Write(doc sent.Doc) error {
	return conllu.Encode(s.w, doc.Sentences)
}
