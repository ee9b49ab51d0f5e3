package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/teams"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: --format must be text, json or yaml, got %q", ErrUsage, format)
	}
}

func render(w io.Writer, format string, an model.Analysis, r *teams.Resolver) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(an)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(an); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return renderText(w, an, r)
	}
}

func renderText(w io.Writer, an model.Analysis, r *teams.Resolver) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Report\t%s (page %d of %d)\n", an.Source, an.Page, an.PageCount)
	fmt.Fprintf(tw, "Teams\t%s vs %s (%s)\n", r.Display(an.FocusTeam), r.Display(an.OpponentTeam), an.DetectionStrategy)
	fmt.Fprintf(tw, "Events\t%d goals, %d cards, %d substitutions\n",
		len(an.Scan.Goals), len(an.Scan.Cards), len(an.Scan.Substitutions))
	if an.Scan.SubOrderAssumed && len(an.Scan.Substitutions) > 0 {
		fmt.Fprintln(tw, "Note\tsubstitution order assumed: first player leaves")
	}
	if n := an.Scan.InvalidMinutes(); n > 0 {
		fmt.Fprintf(tw, "Note\t%d events have unreadable minutes\n", n)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MIN\tTYPE\tDETAIL")
	for _, e := range model.SortTimeline(an.Scan.Timeline) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.MinuteText, e.Kind, e.Summary)
	}

	if rep := an.Report; rep != nil {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Impact\t%s %s %s, window %d'\n",
			r.Display(rep.FocusTeam), rep.FinalScore, r.Display(rep.OpponentTeam), rep.WindowMinutes)
		if len(rep.ExcludedGoals) > 0 {
			fmt.Fprintf(tw, "Note\t%d goals left out of the score, minute unreadable\n", len(rep.ExcludedGoals))
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "MIN\tTEAM\tOUT\tIN\tAT SUB\tFINAL\tIMPACT\tWINDOW\tREVIEW")
		for _, rec := range rep.Records {
			s := rec.Substitution
			review := ""
			if rec.NeedsReview {
				review = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s (%d)\t%s (%d)\t%s\t%s\t%s\n",
				s.MinuteText, r.Display(s.Team), s.Out.Name, s.In.Name,
				rec.ScoreAtSub, rec.PointsAtSub, rec.FinalScore, rec.PointsFinal,
				rec.Label, signed(rec.WindowDifferential()), review)
		}
	}
	return tw.Flush()
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
