package entity

const (
	IngestStatusSucceeded = "succeeded"
	IngestStatusError     = "error"
	IngestMessageComplete = "Ingestion complete."

	DefaultEmbeddingSet = "multimodal-set-1"

	NoFileAnswer         = "Please upload and process a file before asking a question."
	EmptyResponseNotice  = "The model returned an empty response. This might be due to the input query or safety settings."
	DegradedAnswerPrefix = "An error occurred while communicating with the AI model: "
)

type ProcessResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	EmbeddingSet string `json:"embeddingSet"`
	Chunks       int    `json:"chunks"`
	DataType     string `json:"dataType"`
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Answer    string         `json:"answer"`
	Sources   []SourceRecord `json:"sources"`
	Timestamp string         `json:"timestamp"`
	Metrics   Metrics        `json:"metrics"`
}

// StatusErrorResponse is the error body of the ingestion endpoint.
type StatusErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
