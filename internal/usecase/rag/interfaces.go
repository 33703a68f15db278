package rag

import (
	"context"
	"io"

	"github.com/futig/multimodal-rag/internal/entity"
)

type FileStore interface {
	Save(ctx context.Context, file *entity.StoredFile) error
	Current(ctx context.Context) (*entity.StoredFile, error)
}

type ModelGateway interface {
	Answer(ctx context.Context, prompt string, file *entity.StoredFile) (string, error)
}

type MetricsSynthesizer interface {
	Synthesize() entity.Metrics
	ChunkCount() int
}

type SourceSynthesizer interface {
	Synthesize(category entity.Category) []entity.SourceRecord
}

// Scratch stages uploaded content on disk until it has been read.
type Scratch interface {
	Stage(ctx context.Context, data io.Reader) (string, error)
	Read(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string)
}

// Recorder receives domain events for service metrics.
type Recorder interface {
	FileIngested(dataType string)
	GatewayCalled(outcome string)
}
