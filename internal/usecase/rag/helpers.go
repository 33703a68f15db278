package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// readUpload stages the upload on disk and reads it back into memory.
func (uc *RagUsecase) readUpload(ctx context.Context, req *entity.IngestRequest) ([]byte, error) {
	path, err := uc.scratch.Stage(ctx, req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrIO, err)
	}
	defer uc.scratch.Remove(ctx, path)

	data, err := uc.scratch.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrIO, err)
	}

	return data, nil
}

// answer asks the gateway and folds any failure into the answer text.
func (uc *RagUsecase) answer(ctx context.Context, query string, file *entity.StoredFile) string {
	text, err := uc.gateway.Answer(ctx, query, file)
	if err != nil {
		ctxzap.Error(ctx, "model gateway failed", zap.Error(err))
		uc.recorder.GatewayCalled(OutcomeFailed)
		return entity.DegradedAnswerPrefix + err.Error()
	}

	if text == entity.EmptyResponseNotice {
		uc.recorder.GatewayCalled(OutcomeEmpty)
	} else {
		uc.recorder.GatewayCalled(OutcomeAnswered)
	}

	return text
}

// classifyMediaType maps a MIME type to a category. Order matters:
// "pdf" and "doc" are matched anywhere in the string before the prefixes are checked.
func classifyMediaType(mediaType string) entity.Category {
	switch {
	case strings.Contains(mediaType, "pdf"), strings.Contains(mediaType, "doc"):
		return entity.CategoryDocument
	case strings.HasPrefix(mediaType, "image/"):
		return entity.CategoryImage
	case strings.HasPrefix(mediaType, "audio/"):
		return entity.CategoryAudio
	default:
		return entity.CategoryUnknown
	}
}

type nopRecorder struct{}

func (nopRecorder) FileIngested(string)  {}
func (nopRecorder) GatewayCalled(string) {}
