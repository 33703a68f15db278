package synthetic

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chunkIDPattern   = regexp.MustCompile(`^chunk_[0-9a-f]{12}$`)
	timestampPattern = regexp.MustCompile(`^[0-2]:[0-5][0-9]$`)
	sectionPattern   = regexp.MustCompile(`^Excerpt from Section [1-5], discussing key performance indicators\.\.\.$`)
)

func TestSourceSynthesizerShapes(t *testing.T) {
	s := NewSourceSynthesizer(rand.New(rand.NewPCG(1, 2)))

	t.Run("Document sources carry page and section excerpt", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			sources := s.Synthesize(entity.CategoryDocument)
			require.GreaterOrEqual(t, len(sources), SourceCountMin)
			require.LessOrEqual(t, len(sources), SourceCountMax)

			for _, src := range sources {
				assert.Equal(t, entity.CategoryDocument, src.Type)
				assert.Regexp(t, chunkIDPattern, src.ChunkID)
				require.NotNil(t, src.Page)
				assert.GreaterOrEqual(t, *src.Page, PageMin)
				assert.LessOrEqual(t, *src.Page, PageMax)
				assert.Regexp(t, sectionPattern, src.Text)
				assert.Nil(t, src.Confidence)
				assert.Nil(t, src.Timestamp)
			}
		}
	})

	t.Run("Image sources carry confidence", func(t *testing.T) {
		for _, src := range s.Synthesize(entity.CategoryImage) {
			assert.Equal(t, entity.CategoryImage, src.Type)
			require.NotNil(t, src.Confidence)
			assert.GreaterOrEqual(t, *src.Confidence, ConfidenceMin)
			assert.LessOrEqual(t, *src.Confidence, ConfidenceMax)
			assert.Equal(t, imageSourceText, src.Text)
			assert.Nil(t, src.Page)
		}
	})

	t.Run("Audio sources carry M:SS timestamp", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			for _, src := range s.Synthesize(entity.CategoryAudio) {
				assert.Equal(t, entity.CategoryAudio, src.Type)
				require.NotNil(t, src.Timestamp)
				assert.Regexp(t, timestampPattern, *src.Timestamp)
				assert.Equal(t, audioSourceText, src.Text)
			}
		}
	})

	t.Run("Unknown and unrecognized categories use the generic shape", func(t *testing.T) {
		for _, category := range []entity.Category{entity.CategoryUnknown, entity.Category("video")} {
			for _, src := range s.Synthesize(category) {
				assert.Equal(t, entity.CategoryUnknown, src.Type)
				assert.Equal(t, unknownSourceText, src.Text)
				assert.Nil(t, src.Page)
				assert.Nil(t, src.Confidence)
				assert.Nil(t, src.Timestamp)
			}
		}
	})
}

func TestSourceSynthesizerCountBounds(t *testing.T) {
	low := NewSourceSynthesizer(edgeRand{high: false})
	high := NewSourceSynthesizer(edgeRand{high: true})

	assert.Len(t, low.Synthesize(entity.CategoryImage), SourceCountMin)
	assert.Len(t, high.Synthesize(entity.CategoryImage), SourceCountMax)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00", formatElapsed(0))
	assert.Equal(t, "0:09", formatElapsed(9.7))
	assert.Equal(t, "1:05", formatElapsed(65.2))
	assert.Equal(t, "2:59", formatElapsed(179.99))
}

func TestNewChunkIDIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := newChunkID()
		assert.Regexp(t, chunkIDPattern, id)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
