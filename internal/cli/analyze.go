package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/cambios/internal/adapters/export"
	service "github.com/okian/cambios/internal/app"
	"github.com/okian/cambios/internal/domain/impact"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/scanner"
	"github.com/spf13/cobra"
)

// ErrUsage marks invalid flag combinations.
var ErrUsage = errors.New("invalid usage")

type analyzeFlags struct {
	page     int
	focus    string
	opponent string
	window   int
	subOrder string
	goals    []string
	ownGoals []int
	subs     []string
	rival    bool
	xlsx     string
	csv      string
	format   string
}

func (a *app) newAnalyzeCommand() *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Scan one report and optionally evaluate its substitutions",
		Long: `Scan a referee report (.pdf or .txt) and print its events. Page 2 is scanned by
default when the report has at least two pages.

Pass --goals and --subs to say which side scored each goal and made each substitution,
in document order; the impact of the focus team's substitutions is then printed. Use "-"
or an empty entry to leave an event unassigned.`,
		Example: `  cambios analyze informe.pdf
  cambios analyze informe.pdf --goals pumas,tigres --subs pumas --window 20
  cambios analyze informe.pdf --goals pumas,pumas --own-goals 2 --subs pumas,tigres --rival --xlsx out.xlsx
  cambios analyze informe.txt --page 1 --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, f, args[0])
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.page, "page", 0, "1-based page to scan (default: 2 when the report has two or more pages)")
	fl.StringVar(&f.focus, "focus", "", "focus team (default: focus_team)")
	fl.StringVar(&f.opponent, "opponent", "", "opponent team (default: detected)")
	fl.IntVar(&f.window, "window", 0, fmt.Sprintf("windowed-delta minutes, %d..%d (default: window_minutes)", impact.MinWindow, impact.MaxWindow))
	fl.StringVar(&f.subOrder, "sub-order", "", "substitution pair order: out_first or in_first (default: sub_order)")
	fl.StringSliceVar(&f.goals, "goals", nil, "scoring team of each goal, in document order")
	fl.IntSliceVar(&f.ownGoals, "own-goals", nil, "1-based goal numbers that are own goals")
	fl.StringSliceVar(&f.subs, "subs", nil, "team of each substitution, in document order")
	fl.BoolVar(&f.rival, "rival", false, "also evaluate the opponent's substitutions")
	fl.StringVar(&f.xlsx, "xlsx", "", "write an XLSX workbook to this path")
	fl.StringVar(&f.csv, "csv", "", "write the impact records as CSV to this path")
	fl.StringVar(&f.format, "format", formatText, "output format: text, json or yaml")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, f *analyzeFlags, path string) error {
	ctx := cmd.Context()
	if err := checkFormat(f.format); err != nil {
		return err
	}
	var extra []service.Option
	if f.subOrder != "" {
		order, ok := scanner.ParseOrder(f.subOrder)
		if !ok {
			return fmt.Errorf("%w: --sub-order must be out_first or in_first, got %q", ErrUsage, f.subOrder)
		}
		extra = append(extra, service.WithSubstitutionOrder(order))
	}
	if f.focus != "" {
		extra = append(extra, service.WithFocusTeam(f.focus))
	}
	svc := a.newService(extra...)

	pages, err := readDocument(path)
	if err != nil {
		return err
	}
	an, err := svc.Scan(ctx, service.ScanRequest{Source: filepath.Base(path), Pages: pages, Page: f.page})
	if err != nil {
		return err
	}

	if f.assigns() {
		req, err := f.evaluateRequest(cmd)
		if err != nil {
			return err
		}
		if _, err := svc.Evaluate(ctx, an.ID, req); err != nil {
			return err
		}
		if an, err = svc.Get(ctx, an.ID); err != nil {
			return err
		}
	}

	if err := writeExports(an, f.xlsx, f.csv); err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), f.format, an, svc.Resolver())
}

func (f *analyzeFlags) assigns() bool {
	return len(f.goals) > 0 || len(f.subs) > 0
}

func (f *analyzeFlags) evaluateRequest(cmd *cobra.Command) (service.EvaluateRequest, error) {
	req := service.EvaluateRequest{
		FocusTeam:     f.focus,
		OpponentTeam:  f.opponent,
		WindowMinutes: f.window,
	}
	if cmd.Flags().Changed("rival") {
		req.RivalSubstitutions = &f.rival
	}
	for i, team := range f.goals {
		req.Goals = append(req.Goals, service.GoalAssignment{Index: i, Team: teamArg(team)})
	}
	for _, n := range f.ownGoals {
		if n < 1 || n > len(req.Goals) {
			return service.EvaluateRequest{}, fmt.Errorf("%w: --own-goals %d has no team in --goals", ErrUsage, n)
		}
		req.Goals[n-1].OwnGoal = true
	}
	for i, team := range f.subs {
		req.Substitutions = append(req.Substitutions, service.SubstitutionAssignment{Index: i, Team: teamArg(team)})
	}
	return req, nil
}

func teamArg(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

func readDocument(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return service.ReadDocument(path, data)
}

func writeExports(an model.Analysis, xlsxPath, csvPath string) error {
	if xlsxPath != "" {
		if err := writeFile(xlsxPath, func(w *os.File) error { return export.WriteXLSX(w, an) }); err != nil {
			return err
		}
	}
	if csvPath != "" {
		if an.Report == nil {
			return fmt.Errorf("%w: --csv needs --goals or --subs to evaluate the substitutions", ErrUsage)
		}
		if err := writeFile(csvPath, func(w *os.File) error { return export.WriteCSV(w, *an.Report) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
