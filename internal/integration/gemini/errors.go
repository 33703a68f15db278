package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/futig/multimodal-rag/internal/pkg/breaker"
	pkghttp "github.com/futig/multimodal-rag/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// statusError builds the gateway error for a non-success upstream status.
// The upstream body is only logged.
func statusError(ctx context.Context, statusCode int, body string, err error) *entity.GatewayError {
	ctxzap.Error(ctx, "Gemini API error response",
		zap.Int("status", statusCode),
		zap.String("body", body),
	)
	return &entity.GatewayError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("API request failed with status %d. See server console for details.", statusCode),
		Err:        err,
	}
}

// toGatewayError converts connector and breaker errors into *entity.GatewayError.
func toGatewayError(ctx context.Context, err error) error {
	var gwErr *entity.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return statusError(ctx, httpErr.StatusCode, httpErr.Message, err)
	}

	if breaker.IsOpen(err) {
		return &entity.GatewayError{Message: "the AI model is temporarily unavailable, please retry later", Err: err}
	}

	return &entity.GatewayError{Message: err.Error(), Err: err}
}

// isRetryable reports whether another attempt could succeed.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return isRetryableStatus(httpErr.StatusCode)
	}

	var gwErr *entity.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.StatusCode == 0 || isRetryableStatus(gwErr.StatusCode)
	}

	return false
}

// isUpstreamFailure decides which errors count against the circuit breaker.
// Client-side 4xx errors say nothing about upstream health.
func isUpstreamFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return isRetryableStatus(httpErr.StatusCode)
	}

	var gwErr *entity.GatewayError
	if errors.As(err, &gwErr) && gwErr.StatusCode != 0 {
		return isRetryableStatus(gwErr.StatusCode)
	}

	return true
}

func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
