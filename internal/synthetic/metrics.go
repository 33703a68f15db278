package synthetic

import "github.com/futig/multimodal-rag/internal/entity"

const (
	HighAccuracyMin = 0.80
	HighAccuracyMax = 0.98

	AvgSimilarityMin     = 0.85
	AvgSimilarityMax     = 0.95
	SemanticCoherenceMin = 0.88
	SemanticCoherenceMax = 0.98

	ContextUsedMin = 10000
	ContextUsedMax = 160000 // exclusive

	ReadingTimeMin = 0.5
	ReadingTimeMax = 2.5

	ChunkCountMin = 100
	ChunkCountMax = 600 // exclusive
)

type MetricsSynthesizer struct {
	rnd Rand
}

// NewMetricsSynthesizer uses rnd as its random source, or the global one when rnd is nil.
func NewMetricsSynthesizer(rnd Rand) *MetricsSynthesizer {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &MetricsSynthesizer{rnd: rnd}
}

// Synthesize returns a fresh set of bounded quality scores.
func (s *MetricsSynthesizer) Synthesize() entity.Metrics {
	retrievalAcc := s.highAccuracy()
	responseAcc := s.highAccuracy()

	return entity.Metrics{
		OverallAccuracy: (retrievalAcc + responseAcc) / 2,
		Retrieval: entity.RetrievalMetrics{
			Accuracy:          retrievalAcc,
			AvgSimilarity:     uniform(s.rnd, AvgSimilarityMin, AvgSimilarityMax),
			SemanticCoherence: uniform(s.rnd, SemanticCoherenceMin, SemanticCoherenceMax),
			ContextUsed:       intBetween(s.rnd, ContextUsedMin, ContextUsedMax),
		},
		Response: entity.ResponseMetrics{
			Accuracy:        responseAcc,
			ContentCitation: s.highAccuracy(),
			Completeness:    s.highAccuracy(),
			ReadingTime:     uniform(s.rnd, ReadingTimeMin, ReadingTimeMax),
		},
	}
}

// ChunkCount returns the chunk count reported by an ingestion summary.
func (s *MetricsSynthesizer) ChunkCount() int {
	return intBetween(s.rnd, ChunkCountMin, ChunkCountMax)
}

func (s *MetricsSynthesizer) highAccuracy() float64 {
	return uniform(s.rnd, HighAccuracyMin, HighAccuracyMax)
}
