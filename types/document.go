package types

// Metadata keys set by the PDF loader. The pipeline treats unit metadata as
// passthrough except for page lookup, which prefers page_label over
// page_number.
const (
	MetaPageLabel  = "page_label"
	MetaPageNumber = "page_number"
	MetaFileName   = "file_name"
	MetaTotalPages = "total_pages"
)

// PageUnknown is the page value reported when a record carries no usable
// page metadata.
const PageUnknown = "N/A"

// TextUnit is one extracted page of a document together with its metadata.
type TextUnit struct {
	Text     string            // Extracted page text
	Metadata map[string]string // Page metadata, at minimum a page identifier
}

// Chunk is a bounded span of document text, the atomic retrieval unit.
// IDs follow "{basename}_{position}" and are regenerated from position 0 on
// every indexing run.
type Chunk struct {
	ID       string            // "{basename}_{position}"
	Text     string            // Raw chunk text
	Metadata map[string]string // Copied from the source unit
}

// ChunkingConfig carries the chunking parameters for one indexing run.
type ChunkingConfig struct {
	ChunkSize    int // Chunk size in characters
	ChunkOverlap int // Overlap between neighbouring chunks
}

// ChunkStats is the persisted per-document chunking record, keyed by the
// full "{name}.pdf" filename in the stats file.
type ChunkStats struct {
	Chunk   int `json:"chunk"`
	Overlap int `json:"overlap"`
}

// ResultRecord is one ranked retrieval hit, scoped to a single query.
type ResultRecord struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	PageNumber string            `json:"page_number"`
	Score      float32           `json:"score"`
	Metadata   map[string]string `json:"metadata"`
}

// Page resolves the display page of a result, preferring the human page
// label over the numeric page field.
func Page(metadata map[string]string) string {
	if v, ok := metadata[MetaPageLabel]; ok && v != "" {
		return v
	}
	if v, ok := metadata[MetaPageNumber]; ok && v != "" {
		return v
	}
	return PageUnknown
}
