package tei

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"golang.org/x/text/unicode/norm"

	sent "github.com/revelaction/tei2conllu/sentence"
)

const miscSeparatorEscape = "%7C"

// Attributes copied into the MISC column, in output order, before SpaceAfter=No.
var miscAttrs = []struct {
	attr string
	key  string
}{
	{"type", "Type"},
	{"subtype", "Subtype"},
	{"orig", "Orig"},
	{"norm", "Norm"},
}

// Mapper turns sentence elements into sentences of tokens.
type Mapper struct {
	// Namespace of the w and pc elements. Empty matches un-namespaced
	// elements.
	Namespace string

	// Normalize converts forms, lemmas and MISC values to Unicode NFC.
	Normalize bool

	Logger *slog.Logger
}

// NewMapper returns a Mapper for TEI namespaced documents.
func NewMapper() *Mapper {
	return &Mapper{Namespace: Namespace, Logger: slog.Default()}
}

// Document extracts and maps all sentences of doc. sent_id starts at 1.
func (m *Mapper) Document(doc *etree.Document) []sent.Sentence {
	roots := Extract(doc.Root(), m.Namespace)
	m.logger().Info("found sentences", "count", len(roots))

	sentences := make([]sent.Sentence, 0, len(roots))
	for _, root := range roots {
		s := m.Sentence(root, len(sentences)+1)
		sentences = append(sentences, s)
		m.logger().Debug("added sentence", "sent_id", s.Id, "text", s.Text)
	}

	return sentences
}

// Sentence maps every w and pc element of the subtree of root, root
// included, to a token. Other elements are skipped but their descendants are
// still visited.
func (m *Mapper) Sentence(root *etree.Element, id int) sent.Sentence {
	m.logger().Debug("parsing words", "tag", root.FullTag(), "sent_id", id)

	s := sent.Sentence{Id: id}
	walk(root, func(e *etree.Element) {
		m.logger().Debug("found element", "tag", e.FullTag(), "text", e.Text())
		if !m.isToken(e) {
			m.logger().Debug("skipping", "tag", e.FullTag())
			return
		}

		t := m.Token(e, len(s.Tokens))
		s.Tokens = append(s.Tokens, t)
		m.logger().Debug("added token", "form", t.Form, "id", t.Id)
	})

	// Whatever follows the last token carries no information.
	if n := len(s.Tokens); n > 0 {
		s.Tokens[n-1].Misc = nil
	}

	s.Text = Text(s.Tokens)
	return s
}

// Token maps a w or pc element to a token with the given id.
func (m *Mapper) Token(e *etree.Element, id int) sent.Token {
	t := sent.Token{
		Id:   id,
		Form: m.value(innerText(e)),
	}

	if lemma := e.SelectAttr("lemma"); lemma != nil {
		t.Lemma = sent.Str(m.value(lemma.Value))
	}

	switch {
	case isTag(e, m.Namespace, TagPunct):
		t.Upos = sent.Str(UposPunct)
	case e.SelectAttrValue("subtype", "") == "number":
		t.Upos = sent.Str(UposNum)
	}

	for _, a := range miscAttrs {
		if attr := e.SelectAttr(a.attr); attr != nil {
			t.Misc = t.Misc.Add(a.key, m.miscValue(attr.Value))
		}
	}

	// The whitespace flag always comes after the attribute entries.
	if e.Tail() != " " {
		t.Misc = t.Misc.Add("SpaceAfter", "No")
	}

	return t
}

// Text joins the token forms, separated by a space unless the previous token
// is marked SpaceAfter=No. Trailing whitespace is removed.
func Text(tokens []sent.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Form)
		if t.Misc.SpaceAfter() {
			b.WriteString(" ")
		}
	}

	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

func (m *Mapper) isToken(e *etree.Element) bool {
	return isTag(e, m.Namespace, TagWord) || isTag(e, m.Namespace, TagPunct)
}

// value makes s fit a single CoNLL-U column: control characters (tabs, line
// breaks) become spaces.
func (m *Mapper) value(s string) string {
	return m.normalize(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s))
}

// miscValue is value with the MISC separator percent-encoded.
func (m *Mapper) miscValue(s string) string {
	return strings.ReplaceAll(m.value(s), sent.MiscSeparator, miscSeparatorEscape)
}

func (m *Mapper) normalize(s string) string {
	if !m.Normalize {
		return s
	}
	return norm.NFC.String(s)
}

func (m *Mapper) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
