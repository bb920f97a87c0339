package convert

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/tei2conllu/sentence"
	"github.com/revelaction/tei2conllu/storage"
	"github.com/revelaction/tei2conllu/storage/filesystem"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <text>
    <body>
      <p>
        <s><w lemma="the">The</w> <w lemma="cat">cat</w> <w lemma="sit">sat</w><pc>.</pc></s>
        <s><w subtype="number">42</w> <w type="foreign" lemma="Welt">Welten</w><pc>!</pc></s>
      </p>
    </body>
  </text>
</TEI>
`

const expected = "# sent_id = 1\n" +
	"# text = The cat sat.\n" +
	"0\tThe\tthe\t_\t_\t_\t_\t_\t_\t_\n" +
	"1\tcat\tcat\t_\t_\t_\t_\t_\t_\t_\n" +
	"2\tsat\tsit\t_\t_\t_\t_\t_\t_\tSpaceAfter=No\n" +
	"3\t.\t_\tPUNCT\t_\t_\t_\t_\t_\t_\n" +
	"\n" +
	"# sent_id = 2\n" +
	"# text = 42 Welten!\n" +
	"0\t42\t_\tNUM\t_\t_\t_\t_\t_\tSubtype=number\n" +
	"1\tWelten\tWelt\t_\t_\t_\t_\t_\t_\tType=foreign|SpaceAfter=No\n" +
	"2\t!\t_\tPUNCT\t_\t_\t_\t_\t_\t_\n" +
	"\n"

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "corpus.xml", sample)

	c := New(quiet())
	doc, err := c.ConvertFile(in, filesystem.NewDocStore(".conllu"))
	require.NoError(t, err)
	assert.Len(t, doc.Sentences, 2)
	assert.Equal(t, in, doc.Title)

	data, err := os.ReadFile(filepath.Join(dir, "corpus.conllu"))
	require.NoError(t, err)
	assert.Equal(t, expected, string(data))
}

func TestConvertFileWithoutWriter(t *testing.T) {
	in := writeInput(t, t.TempDir(), "corpus.xml", sample)

	doc, err := New(quiet()).ConvertFile(in, nil)
	require.NoError(t, err)
	assert.Equal(t, "The cat sat.", doc.Sentences[0].Text)
}

func TestConvertMalformed(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "bad.xml", `<TEI xmlns="http://www.tei-c.org/ns/1.0"><s><w>a</s></TEI>`)

	_, err := New(quiet()).ConvertFile(in, filesystem.NewDocStore(".conllu"))
	require.ErrorIs(t, err, ErrParse)

	_, statErr := os.Stat(filepath.Join(dir, "bad.conllu"))
	assert.True(t, os.IsNotExist(statErr), "no output for a malformed document")
}

func TestConvertEmptyInput(t *testing.T) {
	_, err := New(quiet()).Convert(strings.NewReader(""), "empty.xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoot) || errors.Is(err, ErrParse))
}

func TestConvertNoSentences(t *testing.T) {
	var logs bytes.Buffer
	c := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	doc, err := c.Convert(strings.NewReader(`<TEI xmlns="http://www.tei-c.org/ns/1.0"><p>text</p></TEI>`), "x.xml")
	require.NoError(t, err)
	assert.Empty(t, doc.Sentences)
	assert.Contains(t, logs.String(), "no sentences found")
}

func TestConvertNamespace(t *testing.T) {
	plain := `<doc><s><w>a</w> <pc>.</pc></s></doc>`

	doc, err := New(quiet()).Convert(strings.NewReader(plain), "plain.xml")
	require.NoError(t, err)
	assert.Empty(t, doc.Sentences)

	doc, err = New(quiet(), WithNamespace("")).Convert(strings.NewReader(plain), "plain.xml")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 1)
	assert.Equal(t, "a .", doc.Sentences[0].Text)
}

func TestConvertLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).Convert(strings.NewReader(sample), "corpus.xml")
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "found sentences")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "skipping")
	assert.Contains(t, out, "added token")
}

func TestConvertFileLogsOutput(t *testing.T) {
	var logs, stream bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dir := t.TempDir()
	in := writeInput(t, dir, "corpus.xml", sample)

	w := storage.MultiWriter(filesystem.NewDocStore(".conllu"), filesystem.NewStreamStore(&stream))
	_, err := New(WithLogger(logger)).ConvertFile(in, w)
	require.NoError(t, err)

	assert.Equal(t, expected, stream.String())
	assert.Contains(t, logs.String(), "saving results")
	assert.Contains(t, logs.String(), filepath.Join(dir, "corpus.conllu")+",stdout")

	logs.Reset()
	_, err = New(WithLogger(logger)).ConvertFile(in, failingWriter{})
	require.Error(t, err)
	assert.Contains(t, logs.String(), "saving results")
}

type failingWriter struct{}

func (failingWriter) Write(sent.Doc) error { return errors.New("disk full") }

func TestConvertWriteError(t *testing.T) {
	in := writeInput(t, t.TempDir(), "corpus.xml", sample)

	_, err := New(quiet()).ConvertFile(in, failingWriter{})
	require.ErrorIs(t, err, ErrWrite)
	assert.ErrorContains(t, err, "disk full")
}

func TestBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	bad := writeInput(t, dir, "a.xml", `<TEI><unclosed></TEI>`)
	good := writeInput(t, dir, "b.xml", sample)
	missing := filepath.Join(dir, "c.xml")

	var results []Result
	err := New(quiet()).Batch([]string{bad, missing, good}, filesystem.NewDocStore(".conllu"), func(r Result) {
		results = append(results, r)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	require.Len(t, results, 3)
	assert.Error(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 2, results[2].Doc.Id)

	data, err := os.ReadFile(filepath.Join(dir, "b.conllu"))
	require.NoError(t, err)
	assert.Equal(t, expected, string(data))

	_, statErr := os.Stat(filepath.Join(dir, "a.conllu"))
	assert.True(t, os.IsNotExist(statErr))
}
