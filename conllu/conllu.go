// Package conllu reads and writes sentences in the CoNLL-U format.
package conllu

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/tei2conllu/sentence"
)

const (
	// Absent is the rendering of an empty column.
	Absent = "_"

	numColumns = 10
)

// Encode writes the sentences to w. Each sentence is a sent_id and a text
// comment line followed by one line per token, and ends with a blank line.
func Encode(w io.Writer, sentences []sent.Sentence) error {
	bw := bufio.NewWriter(w)
	for _, s := range sentences {
		fmt.Fprintf(bw, "# sent_id = %d\n", s.Id)
		fmt.Fprintf(bw, "# text = %s\n", oneLine(s.Text))
		for _, t := range s.Tokens {
			bw.WriteString(Line(t))
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// Marshal returns the CoNLL-U encoding of the sentences.
func Marshal(sentences []sent.Sentence) []byte {
	var buf bytes.Buffer
	// a bytes.Buffer does not fail
	_ = Encode(&buf, sentences)
	return buf.Bytes()
}

// Line returns the tab separated columns of t.
func Line(t sent.Token) string {
	head := Absent
	if t.Head != nil {
		head = strconv.Itoa(*t.Head)
	}

	// An empty string is absent too: CoNLL-U has no rendering for it.
	cols := [numColumns]string{
		strconv.Itoa(t.Id),
		field(&t.Form),
		field(t.Lemma),
		field(t.Upos),
		field(t.Xpos),
		field(t.Feats),
		head,
		field(t.Deprel),
		field(t.Deps),
		Absent,
	}

	if misc := t.Misc.String(); misc != "" {
		cols[9] = oneLine(misc)
	}

	return strings.Join(cols[:], "\t")
}

func field(s *string) string {
	if s == nil || *s == "" {
		return Absent
	}
	return oneLine(*s)
}

// oneLine replaces the tabs and line breaks of s, which would split a column
// or a line, with spaces.
func oneLine(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s)
}

// Decode reads CoNLL-U sentences from r. Only the sent_id and text comments
// are kept. Multiword and empty node lines are skipped.
func Decode(r io.Reader) ([]sent.Sentence, error) {
	var (
		sentences []sent.Sentence
		current   *sent.Sentence
	)

	flush := func() {
		if current != nil {
			sentences = append(sentences, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			current = &sent.Sentence{Id: len(sentences) + 1}
		}

		if strings.HasPrefix(line, "#") {
			key, value, ok := strings.Cut(strings.TrimSpace(line[1:]), "=")
			if !ok {
				continue
			}

			switch strings.TrimSpace(key) {
			case "sent_id":
				id, err := strconv.Atoi(strings.TrimSpace(value))
				if err == nil {
					current.Id = id
				}
			case "text":
				current.Text = strings.TrimPrefix(value, " ")
			}
			continue
		}

		t, skip, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if !skip {
			current.Tokens = append(current.Tokens, t)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flush()
	return sentences, nil
}

func parseLine(line string) (sent.Token, bool, error) {
	cols := strings.Split(line, "\t")
	if len(cols) != numColumns {
		return sent.Token{}, false, fmt.Errorf("expected %d columns, got %d", numColumns, len(cols))
	}

	if strings.ContainsAny(cols[0], "-.") {
		return sent.Token{}, true, nil
	}

	id, err := strconv.Atoi(cols[0])
	if err != nil {
		return sent.Token{}, false, fmt.Errorf("invalid id %q", cols[0])
	}

	t := sent.Token{
		Id:     id,
		Form:   cols[1],
		Lemma:  optional(cols[2]),
		Upos:   optional(cols[3]),
		Xpos:   optional(cols[4]),
		Feats:  optional(cols[5]),
		Deprel: optional(cols[7]),
		Deps:   optional(cols[8]),
	}

	if cols[6] != Absent {
		head, err := strconv.Atoi(cols[6])
		if err != nil {
			return sent.Token{}, false, fmt.Errorf("invalid head %q", cols[6])
		}
		t.Head = &head
	}

	if cols[9] != Absent {
		t.Misc = sent.ParseMisc(cols[9])
	}

	return t, false, nil
}

func optional(col string) *string {
	if col == Absent {
		return nil
	}
	return sent.Str(col)
}
