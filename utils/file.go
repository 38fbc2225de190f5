package utils

import (
	"path/filepath"
	"strings"
)

// BaseName returns a document's filename without directory or extension.
// This is the key for its index artifacts and query target.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsPDF reports whether a filename carries a .pdf extension, case
// insensitive.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
