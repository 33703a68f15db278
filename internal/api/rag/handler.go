package rag

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/futig/multimodal-rag/internal/config"
	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/futig/multimodal-rag/internal/pkg/logger"
	"github.com/futig/multimodal-rag/internal/pkg/response"
	"github.com/futig/multimodal-rag/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	fileField          = "file"
	embeddingNameField = "embeddingName"
	defaultMediaType   = "application/octet-stream"
	maxQueryBodySize   = 1 << 20

	msgNoFile        = "No file uploaded."
	msgTooManyFiles  = "Only one file can be uploaded at a time."
	msgFileTooLarge  = "Uploaded file is too large."
	msgInvalidForm   = "Invalid multipart form data."
	msgReadFailed    = "Failed to read or process the uploaded file."
	msgQueryRequired = "Query is required"
	msgInvalidBody   = "Request body must be a JSON object"
	msgInternal      = "Internal server error"
)

type Handler struct {
	usecase   RagUsecase
	validator *validator.Validator
	cfg       config.FileUploadConfig
}

func NewHandler(
	usecase RagUsecase,
	validator *validator.Validator,
	cfg config.FileUploadConfig,
) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		cfg:       cfg,
	}
}

// Process handles POST /api/process - ingest a single file
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Process")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxMemory); err != nil {
		h.handleFormError(ctx, w, err)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			ctxzap.Warn(ctx, "failed to remove multipart temp files", zap.Error(err))
		}
	}()

	files := r.MultipartForm.File[fileField]
	if err := h.validator.ValidateUpload(files); err != nil {
		h.handleProcessError(ctx, w, err)
		return
	}

	fh := files[0]
	mediaType := fh.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = defaultMediaType
	}
	filename := validator.SanitizeFilename(fh.Filename)

	ctx = logger.AddFields(ctx,
		zap.String("filename", filename),
		zap.String("media_type", mediaType),
		zap.Int64("size", fh.Size),
	)
	ctxzap.Info(ctx, "ingesting file")

	file, err := fh.Open()
	if err != nil {
		h.handleProcessError(ctx, w, errors.Join(entity.ErrIO, err))
		return
	}
	defer file.Close()

	resp, err := h.usecase.Ingest(ctx, &entity.IngestRequest{
		Filename:      filename,
		MediaType:     mediaType,
		Size:          fh.Size,
		EmbeddingName: firstValue(r.MultipartForm, embeddingNameField),
		Content:       file,
	})
	if err != nil {
		h.handleProcessError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "file processed and stored in memory",
		zap.String("data_type", resp.DataType),
		zap.String("embedding_set", resp.EmbeddingSet),
	)

	response.Success(w, resp)
}

// Query handles POST /api/query - answer a question about the ingested file
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Query")

	var req entity.QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBodySize)).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		// A well-formed object whose query is not a string has no usable query.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "query" {
			response.Error(w, http.StatusBadRequest, msgQueryRequired)
			return
		}
		response.Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ctx = logger.AddFields(ctx, zap.Int("query_length", len(req.Query)))

	resp, err := h.usecase.Query(ctx, &req)
	if err != nil {
		if errors.Is(err, entity.ErrValidation) {
			ctxzap.Warn(ctx, "invalid query", zap.Error(err))
			response.Error(w, http.StatusBadRequest, msgQueryRequired)
			return
		}
		ctxzap.Error(ctx, "failed to answer query", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, msgInternal)
		return
	}

	ctxzap.Info(ctx, "query answered",
		zap.Int("answer_length", len(resp.Answer)),
		zap.Int("sources", len(resp.Sources)),
	)

	response.Success(w, resp)
}

func (h *Handler) handleFormError(ctx context.Context, w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		h.respondError(ctx, w, http.StatusBadRequest, msgFileTooLarge, err)
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		h.respondError(ctx, w, http.StatusBadRequest, msgNoFile, err)
	default:
		h.respondError(ctx, w, http.StatusBadRequest, msgInvalidForm, err)
	}
}

func (h *Handler) handleProcessError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrTooManyFiles) {
		h.respondError(ctx, w, http.StatusBadRequest, msgTooManyFiles, err)
	} else if errors.Is(err, entity.ErrFileTooLarge) {
		h.respondError(ctx, w, http.StatusBadRequest, msgFileTooLarge, err)
	} else if errors.Is(err, entity.ErrValidation) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, msgNoFile, err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, msgReadFailed, err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.StatusError(w, status, message)
}

func firstValue(form *multipart.Form, key string) string {
	if form == nil || len(form.Value[key]) == 0 {
		return ""
	}
	return form.Value[key][0]
}
