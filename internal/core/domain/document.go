package domain

// RawDocument is a corpus file as loaded from storage, before tokenization.
type RawDocument struct {
	ID   string `json:"id"`
	Text string `json:"-"`
}

// Document is a tokenized corpus entry. Tokens keep input order and repeats.
type Document struct {
	ID     string   `json:"id"`
	Tokens []string `json:"tokens"`
}

// Sentence is identified by its verbatim text.
type Sentence struct {
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

// SentenceDocuments views a sentence set as documents keyed by sentence text,
// so the same IDF computation serves both phases.
func SentenceDocuments(sentences []Sentence) []Document {
	out := make([]Document, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, Document{ID: s.Text, Tokens: s.Tokens})
	}
	return out
}
