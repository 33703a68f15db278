package rag

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/multimodal-rag/internal/config"
	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/futig/multimodal-rag/internal/pkg/validator"
	"github.com/futig/multimodal-rag/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	answer string
	err    error
	prompt string
	file   *entity.StoredFile
}

func (g *fakeGateway) Answer(_ context.Context, prompt string, file *entity.StoredFile) (string, error) {
	g.prompt = prompt
	g.file = file
	return g.answer, g.err
}

type fakeMetrics struct{}

func (fakeMetrics) Synthesize() entity.Metrics {
	return entity.Metrics{OverallAccuracy: 0.9}
}

func (fakeMetrics) ChunkCount() int { return 321 }

type fakeSources struct {
	categories []entity.Category
}

func (s *fakeSources) Synthesize(category entity.Category) []entity.SourceRecord {
	s.categories = append(s.categories, category)
	return []entity.SourceRecord{{ChunkID: "chunk_000000000000", Type: category, Text: "x"}}
}

type fakeScratch struct {
	mu       sync.Mutex
	files    map[string][]byte
	removed  []string
	stageErr error
	readErr  error
}

func newFakeScratch() *fakeScratch {
	return &fakeScratch{files: map[string][]byte{}}
}

func (s *fakeScratch) Stage(_ context.Context, data io.Reader) (string, error) {
	if s.stageErr != nil {
		return "", s.stageErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "staged-" + string(rune('a'+len(s.files)))
	s.files[path] = b
	return path, nil
}

func (s *fakeScratch) Read(_ context.Context, path string) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[path], nil
}

func (s *fakeScratch) Remove(_ context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.removed = append(s.removed, path)
}

type countingRecorder struct {
	ingested []string
	outcomes []string
}

func (r *countingRecorder) FileIngested(dataType string) { r.ingested = append(r.ingested, dataType) }
func (r *countingRecorder) GatewayCalled(outcome string) { r.outcomes = append(r.outcomes, outcome) }

type fixture struct {
	uc       *RagUsecase
	gateway  *fakeGateway
	sources  *fakeSources
	scratch  *fakeScratch
	recorder *countingRecorder
}

func newFixture() *fixture {
	f := &fixture{
		gateway:  &fakeGateway{answer: "model answer"},
		sources:  &fakeSources{},
		scratch:  newFakeScratch(),
		recorder: &countingRecorder{},
	}
	f.uc = NewUsecase(
		repository.NewFileMemory(0),
		f.gateway,
		fakeMetrics{},
		f.sources,
		f.scratch,
		validator.NewFileValidator(config.FileUploadConfig{}),
		f.recorder,
		"",
		zap.NewNop(),
	)
	f.uc.now = func() time.Time {
		return time.Date(2025, 3, 4, 5, 6, 7, 891_000_000, time.FixedZone("X", 3600))
	}
	return f
}

func ingest(t *testing.T, uc *RagUsecase, mediaType, content string) *entity.ProcessResponse {
	t.Helper()
	resp, err := uc.Ingest(context.Background(), &entity.IngestRequest{
		Filename:  "upload",
		MediaType: mediaType,
		Size:      int64(len(content)),
		Content:   strings.NewReader(content),
	})
	require.NoError(t, err)
	return resp
}

func TestIngest(t *testing.T) {
	t.Run("Stores file and reports data type", func(t *testing.T) {
		f := newFixture()

		resp := ingest(t, f.uc, "application/pdf", "%PDF-1.7")

		assert.Equal(t, entity.IngestStatusSucceeded, resp.Status)
		assert.Equal(t, entity.IngestMessageComplete, resp.Message)
		assert.Equal(t, entity.DefaultEmbeddingSet, resp.EmbeddingSet)
		assert.Equal(t, 321, resp.Chunks)
		assert.Equal(t, "Document", resp.DataType)
		assert.Equal(t, []string{"Document"}, f.recorder.ingested)

		stored, err := f.uc.store.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.7"), stored.Data)
		assert.Equal(t, entity.CategoryDocument, stored.Category)
	})

	t.Run("Uses requested embedding set", func(t *testing.T) {
		f := newFixture()

		resp, err := f.uc.Ingest(context.Background(), &entity.IngestRequest{
			MediaType:     "image/png",
			EmbeddingName: "my-set",
			Content:       strings.NewReader("png"),
		})

		require.NoError(t, err)
		assert.Equal(t, "my-set", resp.EmbeddingSet)
	})

	t.Run("Removes staged file on success", func(t *testing.T) {
		f := newFixture()

		ingest(t, f.uc, "audio/mpeg", "id3")

		assert.Len(t, f.scratch.removed, 1)
		assert.Empty(t, f.scratch.files)
	})

	t.Run("Removes staged file and keeps previous file when read fails", func(t *testing.T) {
		f := newFixture()
		ingest(t, f.uc, "image/png", "first")
		f.scratch.readErr = errors.New("disk gone")

		_, err := f.uc.Ingest(context.Background(), &entity.IngestRequest{
			MediaType: "application/pdf",
			Content:   strings.NewReader("second"),
		})

		require.ErrorIs(t, err, entity.ErrIO)
		assert.Len(t, f.scratch.removed, 2)
		assert.Empty(t, f.scratch.files)

		stored, err := f.uc.store.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.CategoryImage, stored.Category)
	})

	t.Run("Returns ErrIO when staging fails", func(t *testing.T) {
		f := newFixture()
		f.scratch.stageErr = errors.New("no space left")

		_, err := f.uc.Ingest(context.Background(), &entity.IngestRequest{Content: strings.NewReader("x")})

		assert.ErrorIs(t, err, entity.ErrIO)
	})

	t.Run("Rejects request without content", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Ingest(context.Background(), &entity.IngestRequest{Filename: "a.pdf"})

		assert.ErrorIs(t, err, entity.ErrValidation)
	})
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("Answers without a file", func(t *testing.T) {
		f := newFixture()

		resp, err := f.uc.Query(ctx, &entity.QueryRequest{Query: "hello"})

		require.NoError(t, err)
		assert.Equal(t, entity.NoFileAnswer, resp.Answer)
		assert.NotNil(t, resp.Sources)
		assert.Empty(t, resp.Sources)
		assert.Equal(t, 0.9, resp.Metrics.OverallAccuracy)
		assert.Nil(t, f.gateway.file)
		assert.Equal(t, []string{OutcomeNoFile}, f.recorder.outcomes)
	})

	t.Run("Formats timestamp in UTC with milliseconds", func(t *testing.T) {
		f := newFixture()

		resp, err := f.uc.Query(ctx, &entity.QueryRequest{Query: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "2025-03-04T04:06:07.891Z", resp.Timestamp)
	})

	t.Run("Passes query and stored file to the gateway", func(t *testing.T) {
		f := newFixture()
		ingest(t, f.uc, "image/jpeg", "jpeg-bytes")

		resp, err := f.uc.Query(ctx, &entity.QueryRequest{Query: "what is this?"})

		require.NoError(t, err)
		assert.Equal(t, "model answer", resp.Answer)
		assert.Equal(t, "what is this?", f.gateway.prompt)
		assert.Equal(t, []byte("jpeg-bytes"), f.gateway.file.Data)
		assert.Equal(t, []entity.Category{entity.CategoryImage}, f.sources.categories)
		require.Len(t, resp.Sources, 1)
		assert.Equal(t, entity.CategoryImage, resp.Sources[0].Type)
		assert.Equal(t, []string{OutcomeAnswered}, f.recorder.outcomes)
	})

	t.Run("Folds gateway failure into the answer", func(t *testing.T) {
		f := newFixture()
		f.gateway.err = &entity.GatewayError{StatusCode: 500, Message: "API request failed with status 500. See server console for details."}
		ingest(t, f.uc, "audio/wav", "riff")

		resp, err := f.uc.Query(ctx, &entity.QueryRequest{Query: "transcribe"})

		require.NoError(t, err)
		assert.Equal(t, entity.DegradedAnswerPrefix+"API request failed with status 500. See server console for details.", resp.Answer)
		require.Len(t, resp.Sources, 1)
		assert.Equal(t, entity.CategoryAudio, resp.Sources[0].Type)
		assert.Equal(t, []string{OutcomeFailed}, f.recorder.outcomes)
	})

	t.Run("Records empty model replies", func(t *testing.T) {
		f := newFixture()
		f.gateway.answer = entity.EmptyResponseNotice
		ingest(t, f.uc, "image/png", "png")

		resp, err := f.uc.Query(ctx, &entity.QueryRequest{Query: "q"})

		require.NoError(t, err)
		assert.Equal(t, entity.EmptyResponseNotice, resp.Answer)
		assert.Equal(t, []string{OutcomeEmpty}, f.recorder.outcomes)
	})

	t.Run("Uses category of the latest ingest", func(t *testing.T) {
		f := newFixture()
		ingest(t, f.uc, "image/png", "png")
		ingest(t, f.uc, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "docx")

		_, err := f.uc.Query(ctx, &entity.QueryRequest{Query: "q"})

		require.NoError(t, err)
		assert.Equal(t, []entity.Category{entity.CategoryDocument}, f.sources.categories)
	})

	t.Run("Rejects empty and blank queries", func(t *testing.T) {
		f := newFixture()

		for _, q := range []string{"", "   \n\t"} {
			_, err := f.uc.Query(ctx, &entity.QueryRequest{Query: q})
			assert.ErrorIs(t, err, entity.ErrValidation)
		}
		_, err := f.uc.Query(ctx, nil)
		assert.ErrorIs(t, err, entity.ErrValidation)
	})
}

func TestClassifyMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		want      entity.Category
	}{
		{"application/pdf", entity.CategoryDocument},
		{"application/msword", entity.CategoryUnknown},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", entity.CategoryDocument},
		{"image/png", entity.CategoryImage},
		{"image/svg+xml", entity.CategoryImage},
		{"audio/mpeg", entity.CategoryAudio},
		{"video/mp4", entity.CategoryUnknown},
		{"text/plain", entity.CategoryUnknown},
		{"application/octet-stream", entity.CategoryUnknown},
		{"", entity.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyMediaType(tt.mediaType))
		})
	}
}
