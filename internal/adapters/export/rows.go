// Package export writes analyses as spreadsheets, CSV or plain text.
package export

import (
	"strconv"

	"github.com/okian/cambios/internal/domain/model"
)

// Sheet names used in workbooks.
const (
	SheetEvents = "Eventos"
	SheetImpact = "Impacto"
)

var (
	eventHeader  = []string{"Orden", "Minuto", "Texto minuto", "Tipo", "Detalle"}
	impactHeader = []string{
		"Minuto", "Equipo", "Sale", "Entra", "Marcador al cambio", "Puntos al cambio",
		"Marcador final", "Puntos finales", "Impacto", "Ventana (min)",
		"Goles a favor (ventana)", "Goles en contra (ventana)", "Diferencial (ventana)", "Revisar",
	}
)

func eventRows(a model.Analysis) [][]string {
	entries := model.SortTimeline(a.Scan.Timeline)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Order + 1),
			e.Minute.String(),
			e.MinuteText,
			string(e.Kind),
			e.Summary,
		})
	}
	return rows
}

func impactRows(r model.ImpactReport) [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		s := rec.Substitution
		rows = append(rows, []string{
			s.Minute.String(),
			string(s.Team),
			player(s.Out),
			player(s.In),
			rec.ScoreAtSub.String(),
			strconv.Itoa(rec.PointsAtSub),
			rec.FinalScore.String(),
			strconv.Itoa(rec.PointsFinal),
			string(rec.Label),
			strconv.Itoa(rec.WindowMinutes),
			strconv.Itoa(rec.GoalsForInWindow),
			strconv.Itoa(rec.GoalsAgainstInWindow),
			strconv.Itoa(rec.WindowDifferential()),
			yesNo(rec.NeedsReview),
		})
	}
	return rows
}

func player(p model.Player) string {
	if p.Dorsal == "" {
		return p.Name
	}
	return p.Name + " (" + p.Dorsal + ")"
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
