package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	sent "github.com/revelaction/tei2conllu/sentence"
	"github.com/revelaction/tei2conllu/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore is a sentence index of converted documents. Sentence tokens are
// stored as JSON, lemmas in a separate table for lookups.
type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.LemmaFinder = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List() ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title FROM docs ORDER BY title", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			docs = append(docs, sent.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT sent_id, text, data FROM sentences WHERE doc_id = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s, err := scanSentence(stmt)
			if err != nil {
				return err
			}
			s.DocId = id
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// FindLemma calls onSentence for every sentence containing lemma, in
// insertion order.
func (h *DocStore) FindLemma(lemma string, onSentence func(sent.Sentence) error) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	query := "SELECT s.sent_id, s.text, s.data, s.doc_id FROM sentences s " +
		"JOIN sentence_lemmas l ON l.sentence_rowid = s.rowid " +
		"WHERE l.lemma = ? ORDER BY s.rowid"

	return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []interface{}{lemma},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s, err := scanSentence(stmt)
			if err != nil {
				return err
			}
			s.DocId = stmt.ColumnInt(3)
			return onSentence(s)
		},
	})
}

// Write stores doc in one transaction. A document with the same title is
// replaced.
func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	if err = deleteDoc(conn, doc.Title); err != nil {
		return err
	}

	err = sqlitex.Execute(conn, "INSERT INTO docs (title) VALUES (?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for _, s := range doc.Sentences {
		data, marshalErr := json.Marshal(s.Tokens)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, sent_id, text, data) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, s.Id, s.Text, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		for _, lemma := range s.Lemmas() {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{lemma, sentRowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return nil
}

func deleteDoc(conn *sqlite.Conn, title string) error {
	queries := []string{
		"DELETE FROM sentence_lemmas WHERE sentence_rowid IN " +
			"(SELECT s.rowid FROM sentences s JOIN docs d ON s.doc_id = d.id WHERE d.title = ?)",
		"DELETE FROM sentences WHERE doc_id IN (SELECT id FROM docs WHERE title = ?)",
		"DELETE FROM docs WHERE title = ?",
	}

	for _, q := range queries {
		if err := sqlitex.Execute(conn, q, &sqlitex.ExecOptions{Args: []interface{}{title}}); err != nil {
			return fmt.Errorf("failed to delete doc %s: %w", title, err)
		}
	}
	return nil
}

func scanSentence(stmt *sqlite.Stmt) (sent.Sentence, error) {
	s := sent.Sentence{
		Id:   stmt.ColumnInt(0),
		Text: stmt.ColumnText(1),
	}

	if err := json.Unmarshal([]byte(stmt.ColumnText(2)), &s.Tokens); err != nil {
		return sent.Sentence{}, fmt.Errorf("JSON decoding error: %w", err)
	}
	return s, nil
}
