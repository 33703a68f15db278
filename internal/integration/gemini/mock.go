package gemini

import (
	"context"
	"fmt"

	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers without calling the model. Used when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Answer(ctx context.Context, prompt string, file *entity.StoredFile) (string, error) {
	ctxzap.Info(ctx, "[MOCK] answering query",
		zap.String("mime_type", file.MediaType),
		zap.Int("prompt_length", len(prompt)),
	)

	answer := fmt.Sprintf("[MOCK] The uploaded %s (%s, %d bytes) was received. Your question was: %q",
		file.Category, file.MediaType, len(file.Data), prompt)

	return answer, nil
}
