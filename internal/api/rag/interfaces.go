package rag

import (
	"context"

	"github.com/futig/multimodal-rag/internal/entity"
)

type RagUsecase interface {
	Ingest(ctx context.Context, req *entity.IngestRequest) (*entity.ProcessResponse, error)
	Query(ctx context.Context, req *entity.QueryRequest) (*entity.QueryResponse, error)
}
