package repository

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ScratchDir stages uploads on disk before they are read into memory.
type ScratchDir struct {
	basePath string
}

// NewScratchDir creates basePath if it does not exist.
func NewScratchDir(basePath string) (*ScratchDir, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &ScratchDir{basePath: basePath}, nil
}

func (s *ScratchDir) Path() string {
	return s.basePath
}

// Stage copies data into a new temporary file and returns its path.
// The file is removed again if the copy fails.
func (s *ScratchDir) Stage(_ context.Context, data io.Reader) (string, error) {
	f, err := os.CreateTemp(s.basePath, "upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return path, nil
}

// Read returns the full content of a staged file.
func (s *ScratchDir) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read temp file: %w", err)
	}
	return data, nil
}

// Remove deletes a staged file. Failures are logged, not returned.
func (s *ScratchDir) Remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		ctxzap.Warn(ctx, "failed to remove staged upload",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
