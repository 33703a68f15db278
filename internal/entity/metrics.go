package entity

// Metrics is the quality summary attached to every query response.
// Values are synthetic and carry no relation to the query or the file.
type Metrics struct {
	OverallAccuracy float64          `json:"overallAccuracy"`
	Retrieval       RetrievalMetrics `json:"retrieval"`
	Response        ResponseMetrics  `json:"response"`
}

type RetrievalMetrics struct {
	Accuracy          float64 `json:"accuracy"`
	AvgSimilarity     float64 `json:"avgSimilarity"`
	SemanticCoherence float64 `json:"semanticCoherence"`
	ContextUsed       int     `json:"contextUsed"`
}

type ResponseMetrics struct {
	Accuracy        float64 `json:"accuracy"`
	ContentCitation float64 `json:"contentCitation"`
	Completeness    float64 `json:"completeness"`
	ReadingTime     float64 `json:"readingTime"`
}
