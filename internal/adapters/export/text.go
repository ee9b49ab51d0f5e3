package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/teams"
)

// WriteCSV writes the impact records with a header row.
func WriteCSV(w io.Writer, r model.ImpactReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(impactHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(impactRows(r)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteText writes the extracted text of the analyzed page with accents transliterated.
func WriteText(w io.Writer, a model.Analysis) error {
	if _, err := io.WriteString(w, teams.StripAccents(a.PageText)); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
