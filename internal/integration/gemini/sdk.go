package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/multimodal-rag/internal/config"
	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/futig/multimodal-rag/internal/pkg/breaker"
	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// SDKConnector answers queries through the official Gemini Go SDK.
type SDKConnector struct {
	client  *genai.Client
	model   string
	breaker *breaker.Breaker
	logger  *zap.Logger
}

// NewSDKConnector creates the SDK client. opts are applied after the API key.
func NewSDKConnector(ctx context.Context, cfg config.GeminiConnectorConfig, logger *zap.Logger, opts ...option.ClientOption) (*SDKConnector, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini sdk init: %w", err)
	}

	return &SDKConnector{
		client:  client,
		model:   cfg.Model,
		breaker: breaker.New("gemini.sdk.generateContent", cfg.Breaker, isUpstreamFailure, logger),
		logger:  logger,
	}, nil
}

func (c *SDKConnector) Answer(ctx context.Context, prompt string, file *entity.StoredFile) (string, error) {
	ctxzap.Info(ctx, "sending query to Gemini via SDK",
		zap.String("model", c.model),
		zap.String("mime_type", file.MediaType),
		zap.Int("file_size", len(file.Data)),
	)

	model := c.client.GenerativeModel(c.model)

	var resp *genai.GenerateContentResponse
	blocked := false
	err := c.breaker.Execute(func() error {
		r, err := model.GenerateContent(ctx,
			genai.Text(prompt),
			genai.Blob{MIMEType: file.MediaType, Data: file.Data},
		)

		// A safety block is a valid reply without text, not an upstream failure.
		var blockedErr *genai.BlockedError
		if errors.As(err, &blockedErr) {
			ctxzap.Warn(ctx, "Gemini blocked the response", zap.Error(err))
			blocked = true
			return nil
		}

		resp = r
		return sdkError(ctx, err)
	})
	if err != nil {
		ctxzap.Error(ctx, "error calling Gemini API", zap.Error(err))
		return "", toGatewayError(ctx, err)
	}

	if blocked {
		return entity.EmptyResponseNotice, nil
	}

	text := firstText(resp)
	if text == "" {
		ctxzap.Warn(ctx, "no text content in Gemini response")
		return entity.EmptyResponseNotice, nil
	}

	ctxzap.Info(ctx, "received response from Gemini", zap.Int("answer_length", len(text)))
	return text, nil
}

func (c *SDKConnector) Close() error {
	return c.client.Close()
}

// sdkError maps googleapi status errors to *entity.GatewayError so the breaker can classify them.
func sdkError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return statusError(ctx, apiErr.Code, apiErr.Body, err)
	}

	return err
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}

	if text, ok := content.Parts[0].(genai.Text); ok {
		return string(text)
	}
	return ""
}
