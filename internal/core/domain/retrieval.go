package domain

// Query is a set of normalized terms. Terms keep first-seen order so that
// score sums are computed in a fixed order.
type Query struct {
	Terms []string `json:"terms"`
}

// NewQuery drops empty and repeated tokens, keeping first-seen order.
func NewQuery(tokens []string) Query {
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		terms = append(terms, token)
	}
	return Query{Terms: terms}
}

// Empty reports whether no term survived normalization.
func (q Query) Empty() bool {
	return len(q.Terms) == 0
}

// IDFTable maps a token to its inverse document frequency. A token is present
// only if it occurred in at least one document of the collection it was
// computed over.
type IDFTable map[string]float64

// Get returns the IDF of token, or 0 when the token was never seen.
func (t IDFTable) Get(token string) float64 {
	return t[token]
}

// Lookup returns the IDF of token and whether it was seen.
func (t IDFTable) Lookup(token string) (float64, bool) {
	v, ok := t[token]
	return v, ok
}

// ScoredDocument is a document ID with its summed tf-idf score.
type ScoredDocument struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// ScoredSentence carries the two sentence ranking keys.
type ScoredSentence struct {
	Text       string  `json:"text"`
	MatchedIDF float64 `json:"matched_idf"`
	Density    float64 `json:"density"`
}

// Answer holds the ranked files and sentences for one question.
type Answer struct {
	Question  string   `json:"question"`
	Query     []string `json:"query"`
	Files     []string `json:"files"`
	Sentences []string `json:"sentences"`
}

// Best returns the top-ranked sentence, or "" when nothing matched.
func (a *Answer) Best() string {
	if a == nil || len(a.Sentences) == 0 {
		return ""
	}
	return a.Sentences[0]
}
