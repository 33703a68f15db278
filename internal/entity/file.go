package entity

import (
	"io"
	"time"
)

// Category is the media category derived from an uploaded file's MIME type.
type Category string

const (
	CategoryDocument Category = "document"
	CategoryImage    Category = "image"
	CategoryAudio    Category = "audio"
	CategoryUnknown  Category = "unknown"
)

// DataType returns the capitalized name reported to API clients.
func (c Category) DataType() string {
	switch c {
	case CategoryDocument:
		return "Document"
	case CategoryImage:
		return "Image"
	case CategoryAudio:
		return "Audio"
	default:
		return "Unknown"
	}
}

// StoredFile is the single ingested file kept in memory.
// A StoredFile is never modified after it has been saved.
type StoredFile struct {
	Filename   string
	MediaType  string
	Data       []byte
	Category   Category
	IngestedAt time.Time
}

// IngestRequest describes a single uploaded file as received by the API.
type IngestRequest struct {
	Filename      string
	MediaType     string
	Size          int64
	EmbeddingName string
	Content       io.Reader
}
