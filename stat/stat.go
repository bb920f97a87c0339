package stat

import (
	"sort"

	sent "github.com/revelaction/tei2conllu/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs               int
	NumSentences          int
	NumTokens             int
	NumEmptySentences     int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int
	UposDis               map[string]int
	NumLemmas             int
}

// UposCount is the number of tokens of a UPOS tag.
type UposCount struct {
	Upos  string
	Count int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}, UposDis: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences of doc to the statistics. Tokens without UPOS
// count under "_".
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumDocs++
	h.stats.NumSentences += len(doc.Sentences)

	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++
		if len(sentence.Tokens) == 0 {
			h.stats.NumEmptySentences++
		}

		for _, t := range sentence.Tokens {
			upos := "_"
			if t.Upos != nil {
				upos = *t.Upos
			}
			h.stats.UposDis[upos]++

			if t.Lemma != nil {
				h.stats.NumLemmas++
			}
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}

// Upos returns the UPOS distribution, most frequent first.
func (s Stats) Upos() []UposCount {
	counts := make([]UposCount, 0, len(s.UposDis))
	for upos, n := range s.UposDis {
		counts = append(counts, UposCount{Upos: upos, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Upos < counts[j].Upos
	})

	return counts
}
