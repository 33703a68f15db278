package rag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/futig/multimodal-rag/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Gateway call outcomes reported to the Recorder.
const (
	OutcomeAnswered = "answered"
	OutcomeEmpty    = "empty"
	OutcomeFailed   = "failed"
	OutcomeNoFile   = "no_file"
)

// RagUsecase ingests a single file and answers questions about it.
type RagUsecase struct {
	store               FileStore
	gateway             ModelGateway
	metrics             MetricsSynthesizer
	sources             SourceSynthesizer
	scratch             Scratch
	validator           *validator.Validator
	recorder            Recorder
	defaultEmbeddingSet string
	now                 func() time.Time
	logger              *zap.Logger
}

// NewUsecase creates a new RAG use case. recorder may be nil.
func NewUsecase(
	store FileStore,
	gateway ModelGateway,
	metrics MetricsSynthesizer,
	sources SourceSynthesizer,
	scratch Scratch,
	validator *validator.Validator,
	recorder Recorder,
	defaultEmbeddingSet string,
	logger *zap.Logger,
) *RagUsecase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if defaultEmbeddingSet == "" {
		defaultEmbeddingSet = entity.DefaultEmbeddingSet
	}

	return &RagUsecase{
		store:               store,
		gateway:             gateway,
		metrics:             metrics,
		sources:             sources,
		scratch:             scratch,
		validator:           validator,
		recorder:            recorder,
		defaultEmbeddingSet: defaultEmbeddingSet,
		now:                 time.Now,
		logger:              logger,
	}
}

// Ingest stores the uploaded file as the current file, replacing any earlier one.
// The staged copy is removed whether or not ingestion succeeds.
func (uc *RagUsecase) Ingest(ctx context.Context, req *entity.IngestRequest) (*entity.ProcessResponse, error) {
	if req == nil || req.Content == nil {
		return nil, fmt.Errorf("%w: %w: file", entity.ErrValidation, entity.ErrMissingField)
	}

	data, err := uc.readUpload(ctx, req)
	if err != nil {
		return nil, err
	}

	category := classifyMediaType(req.MediaType)
	file := &entity.StoredFile{
		Filename:   req.Filename,
		MediaType:  req.MediaType,
		Data:       data,
		Category:   category,
		IngestedAt: uc.now().UTC(),
	}

	if err := uc.store.Save(ctx, file); err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}

	uc.recorder.FileIngested(category.DataType())
	ctxzap.Info(ctx, "file ingested",
		zap.String("category", string(category)),
		zap.Int("size", len(data)),
	)

	embeddingSet := req.EmbeddingName
	if embeddingSet == "" {
		embeddingSet = uc.defaultEmbeddingSet
	}

	return &entity.ProcessResponse{
		Status:       entity.IngestStatusSucceeded,
		Message:      entity.IngestMessageComplete,
		EmbeddingSet: embeddingSet,
		Chunks:       uc.metrics.ChunkCount(),
		DataType:     category.DataType(),
	}, nil
}

// Query answers req against the current file. Gateway failures are reported inside
// the answer text and never returned as errors.
func (uc *RagUsecase) Query(ctx context.Context, req *entity.QueryRequest) (*entity.QueryResponse, error) {
	if err := uc.validator.ValidateQuery(req); err != nil {
		return nil, err
	}

	resp := &entity.QueryResponse{
		Sources:   []entity.SourceRecord{},
		Timestamp: uc.now().UTC().Format(timestampLayout),
		Metrics:   uc.metrics.Synthesize(),
	}

	// The snapshot is used for the whole request so the answer and the
	// sources describe the same file even if another ingest lands meanwhile.
	file, err := uc.store.Current(ctx)
	if errors.Is(err, entity.ErrNoFileIngested) {
		uc.recorder.GatewayCalled(OutcomeNoFile)
		resp.Answer = entity.NoFileAnswer
		return resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current file: %w", err)
	}

	resp.Answer = uc.answer(ctx, req.Query, file)
	resp.Sources = uc.sources.Synthesize(file.Category)

	return resp, nil
}
