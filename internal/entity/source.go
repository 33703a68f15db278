package entity

// SourceRecord is a source attribution entry shown next to an answer.
// Page, Confidence and Timestamp are set only for the matching category.
type SourceRecord struct {
	ChunkID    string   `json:"chunkId"`
	Type       Category `json:"type"`
	Page       *int     `json:"page,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Timestamp  *string  `json:"timestamp,omitempty"`
	Text       string   `json:"text"`
}
