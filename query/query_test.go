package query

import (
	"bytes"
	"errors"
	"testing"

	"github.com/c-bata/go-prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/tei2conllu/render"
	sent "github.com/revelaction/tei2conllu/sentence"
)

func testDoc() sent.Doc {
	return sent.Doc{
		Title: "doc.xml",
		Sentences: []sent.Sentence{
			{Id: 1, Text: "The cat sat.", Tokens: []sent.Token{
				{Id: 0, Form: "The", Lemma: sent.Str("the")},
				{Id: 1, Form: "cat", Lemma: sent.Str("cat")},
				{Id: 2, Form: "sat", Lemma: sent.Str("sit")},
			}},
			{Id: 2, Text: "Cats sit."},
			{Id: 3, Text: "A cat", Tokens: []sent.Token{
				{Id: 0, Form: "A", Lemma: sent.Str("a")},
				{Id: 1, Form: "cat", Lemma: sent.Str("cat")},
			}},
		},
	}
}

func newTestHandler(buf *bytes.Buffer) *Handler {
	r := render.NewRenderer()
	r.W = buf
	r.HasColor = false
	r.HasPrefix = false
	return NewHandler(testDoc(), r)
}

func ids(sentences []sent.Sentence) []int {
	var out []int
	for _, s := range sentences {
		out = append(out, s.Id)
	}
	return out
}

func TestSelect(t *testing.T) {
	h := newTestHandler(&bytes.Buffer{})

	tests := []struct {
		in   string
		want []int
	}{
		{"2", []int{2}},
		{" 1-2 ", []int{1, 2}},
		{"2-9", []int{2, 3}},
		{"/cat", []int{1, 3}},
		{"/sit", []int{1}},
		{"/dog", nil},
		{"cat", []int{1, 3}},
		{"Cats", []int{2}},
	}

	for _, tt := range tests {
		got, err := h.Select(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, ids(got), tt.in)
	}
}

func TestSelectErrors(t *testing.T) {
	h := newTestHandler(&bytes.Buffer{})

	for _, in := range []string{"", "9", "3-1", "/"} {
		_, err := h.Select(in)
		assert.Error(t, err, in)
	}
}

func TestExecute(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf)

	require.NoError(t, h.Execute("3"))
	assert.Equal(t, "A cat\n", buf.String())

	assert.EqualError(t, h.Execute("/dog"), "no sentences found")
}

type finder struct {
	sentences []sent.Sentence
	err       error
}

func (f finder) FindLemma(lemma string, onSentence func(sent.Sentence) error) error {
	for _, s := range f.sentences {
		if err := onSentence(s); err != nil {
			return err
		}
	}
	return f.err
}

func TestSelectWithFinder(t *testing.T) {
	h := newTestHandler(&bytes.Buffer{})
	h.Finder = finder{sentences: []sent.Sentence{{Id: 40, DocId: 2}}}

	got, err := h.Select("/anything")
	require.NoError(t, err)
	assert.Equal(t, []int{40}, ids(got))

	h.Finder = finder{err: errors.New("db closed")}
	_, err = h.Select("/cat")
	assert.EqualError(t, err, "db closed")
}

func TestCompleter(t *testing.T) {
	h := newTestHandler(&bytes.Buffer{})

	complete := func(text string) []string {
		buf := prompt.NewBuffer()
		buf.InsertText(text, false, true)
		var out []string
		for _, s := range h.completer(*buf.Document()) {
			out = append(out, s.Text)
		}
		return out
	}

	assert.Equal(t, []string{"/cat"}, complete("/c"))
	assert.Equal(t, []string{"/sit"}, complete("/s"))
	assert.Empty(t, complete("/"))
	assert.Empty(t, complete("c"))
}
