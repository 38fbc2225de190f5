package types

import "errors"

// Error taxonomy of the pipeline. Callers match with errors.Is; the concrete
// cause is carried by wrapping.
var (
	// ErrLoad marks a document that could not be read or parsed. Bulk
	// indexing logs it and skips the file.
	ErrLoad = errors.New("document load failed")

	// ErrNotFound marks a query against a document that was never indexed.
	ErrNotFound = errors.New("document index not found")

	// ErrCorruptData marks an artifact pair that cannot be decoded or whose
	// metadata disagrees with the stored vectors.
	ErrCorruptData = errors.New("index data corrupt")

	// ErrModel marks a failed external generative call.
	ErrModel = errors.New("model query failed")

	// ErrParse marks model output that is not well-formed after brace
	// extraction.
	ErrParse = errors.New("model output parse failed")
)
