package gemini

import (
	"context"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/futig/multimodal-rag/internal/config"
	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/futig/multimodal-rag/internal/integration/common"
	"github.com/futig/multimodal-rag/internal/pkg/breaker"
	pkghttp "github.com/futig/multimodal-rag/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector calls the Gemini generateContent REST endpoint.
type Connector struct {
	config    config.GeminiConnectorConfig
	connector *pkghttp.Connector
	breaker   *breaker.Breaker
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GeminiConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		breaker:   breaker.New("gemini.generateContent", cfg.Breaker, isUpstreamFailure, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Answer sends prompt together with the stored file and returns the first text part of the reply.
// A reply without text yields entity.EmptyResponseNotice. Failures are *entity.GatewayError.
func (c *Connector) Answer(ctx context.Context, prompt string, file *entity.StoredFile) (string, error) {
	endpoint := strings.Replace(c.config.GenerateEndpoint, "{model}", c.config.Model, 1)
	req := buildGenerateRequest(prompt, file)

	ctxzap.Info(ctx, "sending query to Gemini",
		zap.String("model", c.config.Model),
		zap.String("mime_type", file.MediaType),
		zap.Int("file_size", len(file.Data)),
	)

	var resp entity.GeminiGenerateResponse
	err := c.breaker.Execute(func() error {
		opts := append(c.config.Retry.ToRetryOptions(ctx),
			retry.RetryIf(isRetryable),
			retry.OnRetry(func(n uint, err error) {
				ctxzap.Warn(ctx, "retrying Gemini request", zap.Uint("attempt", n+1), zap.Error(err))
			}),
		)
		return retry.Do(func() error {
			return c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp)
		}, opts...)
	})
	if err != nil {
		ctxzap.Error(ctx, "error calling Gemini API", zap.Error(err))
		return "", toGatewayError(ctx, err)
	}

	text := resp.FirstText()
	if text == "" {
		ctxzap.Warn(ctx, "no text content in Gemini response", zap.Int("candidates", len(resp.Candidates)))
		return entity.EmptyResponseNotice, nil
	}

	ctxzap.Info(ctx, "received response from Gemini", zap.Int("answer_length", len(text)))
	return text, nil
}

func buildGenerateRequest(prompt string, file *entity.StoredFile) *entity.GeminiGenerateRequest {
	return &entity.GeminiGenerateRequest{
		Contents: []entity.GeminiContent{
			{
				Parts: []entity.GeminiPart{
					{Text: prompt},
					{InlineData: &entity.GeminiInlineData{
						MimeType: file.MediaType,
						Data:     file.Data,
					}},
				},
			},
		},
	}
}
