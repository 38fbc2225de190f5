package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// QueryResponse carries the ranked records of one query.
type QueryResponse struct {
	File    string         `json:"file"`
	Results []ResultRecord `json:"results"`
}

// SupportingRecord is one justification entry of a synthesized answer,
// resolved back to its original chunk text.
type SupportingRecord struct {
	ID    string  `json:"id"`
	Page  string  `json:"page"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// AnswerResponse is the displayable outcome of answer synthesis. Error holds
// a visible message when synthesis degraded instead of crashing.
type AnswerResponse struct {
	Summary    string             `json:"summary"`
	Supporting []SupportingRecord `json:"supporting,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// ReindexResponse reports the outcome of a rebuild.
type ReindexResponse struct {
	File      string `json:"file"`
	Chunks    int    `json:"chunks"`
	ChunkSize int    `json:"chunk_size"`
	Overlap   int    `json:"overlap"`
}
