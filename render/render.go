package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/revelaction/tei2conllu/conllu"
	sent "github.com/revelaction/tei2conllu/sentence"
	"github.com/revelaction/tei2conllu/stat"
)

const (
	FormatText   = "text"
	FormatTable  = "table"
	FormatConllu = "conllu"

	Defaultformat = FormatText
)

func SupportedFormats() []string {
	return []string{FormatText, FormatTable, FormatConllu}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines how a sentence is printed
	//
	// text: the sent_id and the reconstructed text
	// table: the text followed by one line per token
	// conllu: the CoNLL-U block of the sentence
	Format string

	DocNames map[int]string

	idColor    *color.Color
	puncColor  *color.Color
	lemmaColor *color.Color
	miscColor  *color.Color
}

func NewRenderer() *Renderer {
	return &Renderer{
		W:          os.Stdout,
		HasColor:   true,
		HasPrefix:  true,
		Format:     Defaultformat,
		DocNames:   map[int]string{},
		idColor:    color.New(color.FgYellow),
		puncColor:  color.New(color.FgHiBlack),
		lemmaColor: color.New(color.FgGreen),
		miscColor:  color.New(color.FgCyan),
	}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Sentence prints s in the current format.
func (r *Renderer) Sentence(s sent.Sentence) {
	switch r.Format {
	case FormatTable:
		fmt.Fprintf(r.W, "%s%s\n", r.prefix(s), s.Text)
		for _, t := range s.Tokens {
			fmt.Fprintln(r.W, r.token(t))
		}
	case FormatConllu:
		conllu.Encode(r.W, []sent.Sentence{s})
	default:
		fmt.Fprintf(r.W, "%s%s\n", r.prefix(s), r.text(s))
	}
}

// Sentences prints all sentences in the current format.
func (r *Renderer) Sentences(sentences []sent.Sentence) {
	for _, s := range sentences {
		r.Sentence(s)
	}
}

// text returns the sentence text with punctuation tokens dimmed.
func (r *Renderer) text(s sent.Sentence) string {
	if !r.HasColor || len(s.Tokens) == 0 {
		return s.Text
	}

	var b strings.Builder
	for _, t := range s.Tokens {
		if t.Upos != nil && *t.Upos == "PUNCT" {
			b.WriteString(r.paint(r.puncColor, t.Form))
		} else {
			b.WriteString(t.Form)
		}

		if t.Misc.SpaceAfter() {
			b.WriteString(" ")
		}
	}

	return strings.TrimRight(b.String(), " ")
}

func (r *Renderer) token(t sent.Token) string {
	lemma := conllu.Absent
	if t.Lemma != nil {
		lemma = *t.Lemma
	}

	upos := conllu.Absent
	if t.Upos != nil {
		upos = *t.Upos
	}

	misc := t.Misc.String()
	if misc == "" {
		misc = conllu.Absent
	}

	return fmt.Sprintf("%6s %20q %15s %6s %s",
		r.paint(r.idColor, fmt.Sprintf("%d", t.Id)),
		t.Form,
		r.paint(r.lemmaColor, lemma),
		upos,
		r.paint(r.miscColor, misc))
}

func (r *Renderer) prefix(s sent.Sentence) string {
	if !r.HasPrefix {
		return ""
	}

	id := fmt.Sprintf("%d", s.Id)
	if name, ok := r.DocNames[s.DocId]; ok {
		id = fmt.Sprintf("%s-%d", name, s.Id)
	}

	return "✍  " + r.paint(r.idColor, id) + " "
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.HasColor {
		return s
	}

	// Force the escape codes even when stdout is not a terminal; HasColor
	// decides.
	c.EnableColor()
	return c.Sprint(s)
}

// Stats prints the aggregated statistics of title.
func (r *Renderer) Stats(title string, stats stat.Stats) {
	fmt.Fprintf(r.W, "📖 %s\n", title)
	fmt.Fprintf(r.W, "Num sentences %d, num tokens %d, num tokens per sentence %d, empty sentences %d, tokens with lemma %d\n",
		stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean, stats.NumEmptySentences, stats.NumLemmas)

	for _, uc := range stats.Upos() {
		fmt.Fprintf(r.W, "%8s %d\n", uc.Upos, uc.Count)
	}
}

func (r *Renderer) NextFormat() {
	formats := SupportedFormats()
	for i, f := range formats {
		if f == r.Format {
			r.Format = formats[(i+1)%len(formats)]
			return
		}
	}
	r.Format = Defaultformat
}

func (r *Renderer) NextPrefix() {
	r.HasPrefix = !r.HasPrefix
}
