package service

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"
	"github.com/phamtrung99/ragdex/types"
)

// PDFService extracts page-wise text from PDF files.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// Load reads a PDF and returns one text unit per page, each carrying page
// metadata. Pages that fail to extract are logged and skipped; a document
// with no extractable pages yields an empty slice, not an error. Open or
// parse failures wrap types.ErrLoad so bulk indexing can skip the file.
func (s *PDFService) Load(path string) ([]types.TextUnit, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrLoad, path, err)
	}
	defer f.Close()

	fileName := filepath.Base(path)
	totalPages := reader.NumPage()
	units := make([]types.TextUnit, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			log.Warn("failed to extract page text", "file", fileName, "page", pageNum, "err", err)
			continue
		}
		text = cleanText(text)
		if text == "" {
			continue
		}
		units = append(units, types.TextUnit{
			Text: text,
			Metadata: map[string]string{
				types.MetaPageLabel:  strconv.Itoa(pageNum),
				types.MetaPageNumber: strconv.Itoa(pageNum),
				types.MetaFileName:   fileName,
				types.MetaTotalPages: strconv.Itoa(totalPages),
			},
		})
	}
	return units, nil
}

func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\uFFFD": "",   // Unicode replacement character
		"\u001B": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, repl := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, repl)
	}
	return strings.TrimSpace(cleaned)
}
