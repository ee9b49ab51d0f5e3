// Package pdftext extracts plain text from PDF referee reports, one string per page.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// ReadPages extracts the text of every page. Pages without a content stream yield "".
func ReadPages(r io.ReaderAt, size int64) (pages []string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("%w: %v", ErrExtract, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	n := reader.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrExtract, i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// ReadBytes extracts page text from an in-memory PDF.
func ReadBytes(data []byte) ([]string, error) {
	return ReadPages(bytes.NewReader(data), int64(len(data)))
}

// ReadFile extracts page text from the PDF at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return ReadPages(f, st.Size())
}

// DefaultPage is the page to analyze when none is chosen: page 2, where the referee
// report sits, for multi-page files, else page 1.
func DefaultPage(pageCount int) int {
	if pageCount >= 2 {
		return 2
	}
	return 1
}

// IsPDF reports whether data starts with the PDF magic bytes.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
