package sentence

import "strings"

const (
	// SpaceAfterNo is the MISC annotation marking a token not followed by a space.
	SpaceAfterNo = "SpaceAfter=No"

	// MiscSeparator joins the entries of the MISC column.
	MiscSeparator = "|"
)

// Doc is one converted input document.
type Doc struct {
	Id int

	// Title is the path of the source document.
	Title string

	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is an ordered list of tokens with its metadata.
type Sentence struct {
	// Id is the 1-based sent_id, sequential across the document.
	Id int `json:"sent_id"`

	// Text is the surface text reconstructed from the token forms.
	Text string `json:"text"`

	DocId int `json:"doc_id,omitempty"`

	Tokens []Token `json:"tokens"`
}

// Token represents a row of a CoNLL-U sentence. A nil pointer field is an
// absent column.
type Token struct {
	// The index of the word in the sentence, starting at 0.
	Id int `json:"id"`

	// The unmodified word
	Form string `json:"form"`

	// The lemma of the word
	Lemma *string `json:"lemma,omitempty"`

	// Coarse part of speech
	Upos *string `json:"upos,omitempty"`

	Xpos   *string `json:"xpos,omitempty"`
	Feats  *string `json:"feats,omitempty"`
	Head   *int    `json:"head,omitempty"`
	Deprel *string `json:"deprel,omitempty"`
	Deps   *string `json:"deps,omitempty"`

	Misc Misc `json:"misc,omitempty"`
}

// Misc is the ordered list of key=value annotations of the MISC column. A
// nil or empty Misc is absent.
type Misc []MiscEntry

type MiscEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (e MiscEntry) String() string {
	return e.Key + "=" + e.Value
}

// Add appends the annotation key=value.
func (m Misc) Add(key, value string) Misc {
	return append(m, MiscEntry{Key: key, Value: value})
}

// Has reports whether the annotation key=value is one of the entries.
func (m Misc) Has(key, value string) bool {
	for _, e := range m {
		if e.Key == key && e.Value == value {
			return true
		}
	}
	return false
}

// SpaceAfter reports whether the token is followed by a space. Only an
// explicit SpaceAfter=No entry turns it off, whatever other entries exist.
func (m Misc) SpaceAfter() bool {
	return !m.Has("SpaceAfter", "No")
}

// String returns the pipe joined annotations, or the empty string if absent.
func (m Misc) String() string {
	parts := make([]string, len(m))
	for i, e := range m {
		parts[i] = e.String()
	}
	return strings.Join(parts, MiscSeparator)
}

// ParseMisc splits a MISC column value into its entries. Entries without a
// "=" keep the whole text as key.
func ParseMisc(s string) Misc {
	if s == "" {
		return nil
	}

	var m Misc
	for _, part := range strings.Split(s, MiscSeparator) {
		key, value, _ := strings.Cut(part, "=")
		m = m.Add(key, value)
	}
	return m
}

// Lemmas returns the unique lemmas of the sentence in order of appearance.
func (s Sentence) Lemmas() []string {
	seen := map[string]bool{}
	var lemmas []string
	for _, t := range s.Tokens {
		if t.Lemma == nil || *t.Lemma == "" || seen[*t.Lemma] {
			continue
		}
		seen[*t.Lemma] = true
		lemmas = append(lemmas, *t.Lemma)
	}
	return lemmas
}

// Str returns a pointer to s, for filling optional token fields.
func Str(s string) *string {
	return &s
}
