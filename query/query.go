package query

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/tei2conllu/render"
	sent "github.com/revelaction/tei2conllu/sentence"
	"github.com/revelaction/tei2conllu/storage"
)

const (
	// lemmaPrefix is the Character in the prompt that prefixes a lemma search
	lemmaPrefix = "/"

	quit = "quit"
)

// Handler browses the sentences of one converted document.
//
// Input is a sent_id ("12"), a range of sent_ids ("3-5"), a lemma prefixed by
// "/" ("/cat") or any other text, which lists the sentences whose text
// contains it.
type Handler struct {
	Doc      sent.Doc
	Renderer *render.Renderer

	// Finder, if set, answers lemma searches instead of the document.
	Finder storage.LemmaFinder

	byId    map[int]int
	byLemma map[string][]int
	lemmas  []string
}

func NewHandler(doc sent.Doc, r *render.Renderer) *Handler {
	h := &Handler{
		Doc:      doc,
		Renderer: r,
		byId:     map[int]int{},
		byLemma:  map[string][]int{},
	}

	for i, s := range doc.Sentences {
		h.byId[s.Id] = i
		for _, lemma := range s.Lemmas() {
			if _, ok := h.byLemma[lemma]; !ok {
				h.lemmas = append(h.lemmas, lemma)
			}
			h.byLemma[lemma] = append(h.byLemma[lemma], i)
		}
	}

	sort.Strings(h.lemmas)
	return h
}

func (h *Handler) Run() error {

	fmt.Fprintf(h.Renderer.W, "📖 %s: %d sentences\n", h.Doc.Title, len(h.Doc.Sentences))
	fmt.Fprintln(h.Renderer.W, "🔑 <sent_id>, <from>-<to>, /<lemma>, <text>. Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("tei2conllu inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(h.Renderer.W, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		in = strings.TrimSpace(in)
		if in == quit {
			return nil
		}

		if in == "" {
			continue
		}

		history = append(history, in)
		if err := h.Execute(in); err != nil {
			fmt.Fprintf(h.Renderer.W, "✍  %s\n", err)
		}
	}
}

// Execute renders the sentences selected by in.
func (h *Handler) Execute(in string) error {
	sentences, err := h.Select(in)
	if err != nil {
		return err
	}

	if len(sentences) == 0 {
		return errors.New("no sentences found")
	}

	h.Renderer.Sentences(sentences)
	return nil
}

// Select returns the sentences selected by in.
func (h *Handler) Select(in string) ([]sent.Sentence, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return nil, errors.New("empty query")
	}

	if strings.HasPrefix(in, lemmaPrefix) {
		return h.findLemma(strings.TrimPrefix(in, lemmaPrefix))
	}

	if id, err := strconv.Atoi(in); err == nil {
		return h.rangeIds(id, id)
	}

	if from, to, ok := strings.Cut(in, "-"); ok {
		f, errFrom := strconv.Atoi(strings.TrimSpace(from))
		t, errTo := strconv.Atoi(strings.TrimSpace(to))
		if errFrom == nil && errTo == nil {
			return h.rangeIds(f, t)
		}
	}

	var found []sent.Sentence
	for _, s := range h.Doc.Sentences {
		if strings.Contains(s.Text, in) {
			found = append(found, s)
		}
	}
	return found, nil
}

func (h *Handler) rangeIds(from, to int) ([]sent.Sentence, error) {
	if from > to {
		return nil, fmt.Errorf("invalid range %d-%d", from, to)
	}

	var found []sent.Sentence
	for id := from; id <= to; id++ {
		i, ok := h.byId[id]
		if !ok {
			continue
		}
		found = append(found, h.Doc.Sentences[i])
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("sent_id out of range (doc has %d sentences)", len(h.Doc.Sentences))
	}
	return found, nil
}

func (h *Handler) findLemma(lemma string) ([]sent.Sentence, error) {
	if lemma == "" {
		return nil, errors.New("no lemma given")
	}

	if h.Finder != nil {
		var found []sent.Sentence
		err := h.Finder.FindLemma(lemma, func(s sent.Sentence) error {
			found = append(found, s)
			return nil
		})
		return found, err
	}

	var found []sent.Sentence
	for _, i := range h.byLemma[lemma] {
		found = append(found, h.Doc.Sentences[i])
	}
	return found, nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}
	befCursor := in.TextBeforeCursor()

	if !strings.HasPrefix(befCursor, lemmaPrefix) {
		return s
	}

	word := strings.TrimPrefix(befCursor, lemmaPrefix)
	if word == "" {
		return s
	}

	for _, lemma := range h.lemmas {
		if strings.HasPrefix(lemma, word) {
			s = append(s, prompt.Suggest{
				Text:        lemmaPrefix + lemma,
				Description: fmt.Sprintf("🔖 %d", len(h.byLemma[lemma])),
			})
		}
	}

	return s
}
