package types

// QueryRequest asks for ranked chunks from one indexed document.
type QueryRequest struct {
	File  string `json:"file"`
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// AskRequest runs retrieval plus answer synthesis over one document.
type AskRequest struct {
	File  string `json:"file"`
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// ReindexRequest rebuilds the index of one document with new chunking
// parameters. Ranges mirror the original control surface: chunk size
// 128-1024, overlap 0-100.
type ReindexRequest struct {
	File      string `json:"file"`
	ChunkSize int    `json:"chunk_size"`
	Overlap   int    `json:"overlap"`
}
