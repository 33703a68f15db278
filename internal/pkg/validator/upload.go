package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/multimodal-rag/internal/config"
	"github.com/futig/multimodal-rag/internal/entity"
)

// Validator validates file uploads
type Validator struct {
	cfg config.FileUploadConfig
}

func NewFileValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUpload checks that exactly one file was sent and that it fits the size limit.
func (v *Validator) ValidateUpload(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: %w: file", entity.ErrValidation, entity.ErrMissingField)
	}

	if len(files) > 1 {
		return fmt.Errorf("%w: %w: only one file is accepted, got %d", entity.ErrValidation, entity.ErrTooManyFiles, len(files))
	}

	fh := files[0]
	if v.cfg.MaxFileSize > 0 && fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: %w: file '%s' is %d bytes (max %d)", entity.ErrValidation, entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

// ValidateQuery checks that the query text is present.
func (v *Validator) ValidateQuery(req *entity.QueryRequest) error {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return fmt.Errorf("%w: %w: query", entity.ErrValidation, entity.ErrMissingField)
	}
	return nil
}

// SanitizeFilename sanitizes a filename for logging and temporary storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
		string(filepath.Separator), "_",
	)
	return replacer.Replace(filename)
}
