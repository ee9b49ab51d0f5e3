package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/okian/cambios/internal/adapters/pdftext"
)

// ReadDocument turns an uploaded file into page texts. PDFs are recognized by their
// magic bytes whatever the name says; .txt files, and UTF-8 data without an extension,
// are split on form feeds.
func ReadDocument(name string, data []byte) ([]string, error) {
	if pdftext.IsPDF(data) {
		return pdftext.ReadBytes(data)
	}
	switch ext := strings.ToLower(filepath.Ext(name)); {
	case ext == ".txt", ext == "" && utf8.Valid(data):
		return SplitPages(string(data)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, name)
	}
}
