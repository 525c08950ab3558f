// Package ranking scores documents and sentences against a query using
// inverse document frequency statistics.
package ranking

import (
	"math"

	"github.com/kirillkom/corpus-qa/internal/core/domain"
)

// ComputeIDFs returns idf(t) = ln(N / df(t)) for every token that occurs in at
// least one of docs, where df counts documents containing t at least once.
func ComputeIDFs(docs []domain.Document) domain.IDFTable {
	docFreq := make(map[string]int, 256)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc.Tokens))
		for _, token := range doc.Tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}

	total := float64(len(docs))
	idfs := make(domain.IDFTable, len(docFreq))
	for token, df := range docFreq {
		idfs[token] = math.Log(total / float64(df))
	}
	return idfs
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}

func limitFor(n, available int) int {
	if n <= 0 {
		return 0
	}
	if n > available {
		return available
	}
	return n
}
