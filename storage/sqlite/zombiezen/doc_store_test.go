package zombiezen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/tei2conllu/sentence"
)

func newTestStore(t *testing.T) *DocStore {
	t.Helper()
	pool, err := NewPool(filepath.Join(t.TempDir(), "corpus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	require.NoError(t, CreateDocTables(pool))
	return NewDocStore(pool)
}

func sampleDoc(title string) sent.Doc {
	return sent.Doc{
		Title: title,
		Sentences: []sent.Sentence{
			{Id: 1, Text: "The cat sat.", Tokens: []sent.Token{
				{Id: 0, Form: "The", Lemma: sent.Str("the")},
				{Id: 1, Form: "cat", Lemma: sent.Str("cat"), Misc: sent.Misc{}.Add("Type", "foreign")},
				{Id: 2, Form: "sat", Lemma: sent.Str("sit"), Misc: sent.Misc{}.Add("SpaceAfter", "No")},
				{Id: 3, Form: ".", Upos: sent.Str("PUNCT")},
			}},
			{Id: 2, Text: ""},
			{Id: 3, Text: "A cat", Tokens: []sent.Token{
				{Id: 0, Form: "A", Lemma: sent.Str("a")},
				{Id: 1, Form: "cat", Lemma: sent.Str("cat")},
			}},
		},
	}
}

func TestDocStoreWriteRead(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write(sampleDoc("b.xml")))
	require.NoError(t, store.Write(sampleDoc("a.xml")))

	docs, err := store.List()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.xml", docs[0].Title)
	assert.Equal(t, "b.xml", docs[1].Title)

	doc, err := store.Read(docs[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "b.xml", doc.Title)
	require.Len(t, doc.Sentences, 3)
	assert.Equal(t, "The cat sat.", doc.Sentences[0].Text)
	assert.Equal(t, sampleDoc("").Sentences[0].Tokens, doc.Sentences[0].Tokens)
	assert.Empty(t, doc.Sentences[1].Tokens)

	_, err = store.Read(999)
	assert.ErrorContains(t, err, "doc not found")
}

func TestDocStoreWriteReplaces(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write(sampleDoc("a.xml")))
	require.NoError(t, store.Write(sampleDoc("a.xml")))

	docs, err := store.List()
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var found []sent.Sentence
	require.NoError(t, store.FindLemma("cat", func(s sent.Sentence) error {
		found = append(found, s)
		return nil
	}))
	assert.Len(t, found, 2)
}

func TestDocStoreFindLemma(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Write(sampleDoc("a.xml")))

	var ids []int
	require.NoError(t, store.FindLemma("cat", func(s sent.Sentence) error {
		ids = append(ids, s.Id)
		return nil
	}))
	assert.Equal(t, []int{1, 3}, ids)

	ids = nil
	require.NoError(t, store.FindLemma("sit", func(s sent.Sentence) error {
		ids = append(ids, s.Id)
		return nil
	}))
	assert.Equal(t, []int{1}, ids)

	ids = nil
	require.NoError(t, store.FindLemma("dog", func(s sent.Sentence) error {
		ids = append(ids, s.Id)
		return nil
	}))
	assert.Empty(t, ids)
}
