package domain

import "time"

// QueryLogEntry records one answered question. IDF tables are never stored.
type QueryLogEntry struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Files     []string  `json:"files"`
	Sentences []string  `json:"sentences"`
	CreatedAt time.Time `json:"created_at"`
}
