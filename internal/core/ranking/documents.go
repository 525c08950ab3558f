package ranking

import (
	"sort"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

// ScoreFiles scores every document by summed tf-idf of the query terms and
// returns them best first. Equal scores keep the order of docs.
func ScoreFiles(query domain.Query, docs []domain.Document, idfs domain.IDFTable) []domain.ScoredDocument {
	scored := make([]domain.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		counts := termCounts(doc.Tokens)
		score := 0.0
		for _, term := range query.Terms {
			score += float64(counts[term]) * idfs.Get(term)
		}
		scored = append(scored, domain.ScoredDocument{ID: doc.ID, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// TopFiles returns the IDs of at most n best-matching documents.
func TopFiles(query domain.Query, docs []domain.Document, idfs domain.IDFTable, n int) []string {
	scored := ScoreFiles(query, docs, idfs)
	limit := limitFor(n, len(scored))

	out := make([]string, 0, limit)
	for _, doc := range scored[:limit] {
		out = append(out, doc.ID)
	}
	return out
}
