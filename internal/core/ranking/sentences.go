package ranking

import (
	"sort"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

// ScoreSentences ranks sentences by the summed IDF of query terms they
// contain, then by query term density. Remaining ties keep input order.
func ScoreSentences(query domain.Query, sentences []domain.Sentence, idfs domain.IDFTable) []domain.ScoredSentence {
	scored := make([]domain.ScoredSentence, 0, len(sentences))
	for _, sentence := range sentences {
		counts := termCounts(sentence.Tokens)
		matched := 0.0
		occurrences := 0
		for _, term := range query.Terms {
			c := counts[term]
			if c == 0 {
				continue
			}
			matched += idfs.Get(term)
			occurrences += c
		}

		density := 0.0
		if len(sentence.Tokens) > 0 {
			density = float64(occurrences) / float64(len(sentence.Tokens))
		}
		scored = append(scored, domain.ScoredSentence{
			Text:       sentence.Text,
			MatchedIDF: matched,
			Density:    density,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchedIDF != scored[j].MatchedIDF {
			return scored[i].MatchedIDF > scored[j].MatchedIDF
		}
		return scored[i].Density > scored[j].Density
	})
	return scored
}

// TopSentences returns the text of at most n best-matching sentences.
func TopSentences(query domain.Query, sentences []domain.Sentence, idfs domain.IDFTable, n int) []string {
	scored := ScoreSentences(query, sentences, idfs)
	limit := limitFor(n, len(scored))

	out := make([]string, 0, limit)
	for _, sentence := range scored[:limit] {
		out = append(out, sentence.Text)
	}
	return out
}
