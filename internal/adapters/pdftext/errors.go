package pdftext

import "errors"

// Sentinel errors for PDF extraction.
var (
	ErrOpen    = errors.New("cannot open pdf")
	ErrExtract = errors.New("cannot extract pdf text")
)
