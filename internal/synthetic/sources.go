package synthetic

import (
	"fmt"
	"strings"

	"github.com/futig/multimodal-rag/internal/entity"
	"github.com/google/uuid"
)

const (
	SourceCountMin = 2
	SourceCountMax = 4

	PageMin    = 1
	PageMax    = 100
	SectionMin = 1
	SectionMax = 5

	ConfidenceMin = 0.80
	ConfidenceMax = 0.99

	// audio timestamps are drawn from the first three minutes
	maxElapsedSeconds = 180

	chunkIDPrefix    = "chunk_"
	chunkIDHexLength = 12

	imageSourceText   = "Detected object with high confidence in the upper-left quadrant."
	audioSourceText   = "Transcript segment identified as relevant to the user's query."
	unknownSourceText = "Data chunk retrieved from the vectorized file content."
)

type SourceSynthesizer struct {
	rnd     Rand
	chunkID func() string
}

// NewSourceSynthesizer uses rnd as its random source, or the global one when rnd is nil.
func NewSourceSynthesizer(rnd Rand) *SourceSynthesizer {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &SourceSynthesizer{
		rnd:     rnd,
		chunkID: newChunkID,
	}
}

// Synthesize returns two to four source records shaped for category.
// Unrecognized categories get the unknown shape.
func (s *SourceSynthesizer) Synthesize(category entity.Category) []entity.SourceRecord {
	count := intBetween(s.rnd, SourceCountMin, SourceCountMax+1)
	sources := make([]entity.SourceRecord, 0, count)

	for i := 0; i < count; i++ {
		source := entity.SourceRecord{ChunkID: s.chunkID()}

		switch category {
		case entity.CategoryDocument:
			page := intBetween(s.rnd, PageMin, PageMax+1)
			section := intBetween(s.rnd, SectionMin, SectionMax+1)
			source.Type = entity.CategoryDocument
			source.Page = &page
			source.Text = fmt.Sprintf("Excerpt from Section %d, discussing key performance indicators...", section)
		case entity.CategoryImage:
			confidence := uniform(s.rnd, ConfidenceMin, ConfidenceMax)
			source.Type = entity.CategoryImage
			source.Confidence = &confidence
			source.Text = imageSourceText
		case entity.CategoryAudio:
			timestamp := formatElapsed(uniform(s.rnd, 0, maxElapsedSeconds))
			source.Type = entity.CategoryAudio
			source.Timestamp = &timestamp
			source.Text = audioSourceText
		default:
			source.Type = entity.CategoryUnknown
			source.Text = unknownSourceText
		}

		sources = append(sources, source)
	}

	return sources
}

// formatElapsed renders seconds as M:SS.
func formatElapsed(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// newChunkID returns "chunk_" followed by 12 random hex characters.
func newChunkID() string {
	id := uuid.New()
	hex := strings.ReplaceAll(id.String(), "-", "")
	return chunkIDPrefix + hex[:chunkIDHexLength]
}
