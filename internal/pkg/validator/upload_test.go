package validator

import (
	"mime/multipart"
	"testing"

	"github.com/futig/multimodal-rag/internal/config"
	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	v := NewFileValidator(config.FileUploadConfig{MaxFileSize: 10})

	t.Run("Rejects missing file", func(t *testing.T) {
		err := v.ValidateUpload(nil)

		assert.ErrorIs(t, err, entity.ErrValidation)
		assert.ErrorIs(t, err, entity.ErrMissingField)
	})

	t.Run("Rejects more than one file", func(t *testing.T) {
		err := v.ValidateUpload([]*multipart.FileHeader{
			{Filename: "a.pdf", Size: 1},
			{Filename: "b.pdf", Size: 1},
		})

		assert.ErrorIs(t, err, entity.ErrTooManyFiles)
	})

	t.Run("Rejects oversized file", func(t *testing.T) {
		err := v.ValidateUpload([]*multipart.FileHeader{{Filename: "big.wav", Size: 11}})

		assert.ErrorIs(t, err, entity.ErrFileTooLarge)
	})

	t.Run("Accepts single file within limit", func(t *testing.T) {
		err := v.ValidateUpload([]*multipart.FileHeader{{Filename: "a.png", Size: 10}})

		assert.NoError(t, err)
	})
}

func TestValidateQuery(t *testing.T) {
	v := NewFileValidator(config.FileUploadConfig{})

	assert.ErrorIs(t, v.ValidateQuery(&entity.QueryRequest{}), entity.ErrValidation)
	assert.ErrorIs(t, v.ValidateQuery(&entity.QueryRequest{Query: "   "}), entity.ErrMissingField)
	assert.ErrorIs(t, v.ValidateQuery(nil), entity.ErrValidation)
	assert.NoError(t, v.ValidateQuery(&entity.QueryRequest{Query: "hello"}))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_report2024.pdf", SanitizeFilename("/tmp/x/my report(2024).pdf"))
}
