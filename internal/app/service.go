// Package service runs analyses: it scans report pages, suggests the two teams, keeps
// the session and evaluates substitutions once events are assigned to a side.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/cambios/internal/adapters/pdftext"
	"github.com/okian/cambios/internal/adapters/repository"
	"github.com/okian/cambios/internal/domain/impact"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/scanner"
	"github.com/okian/cambios/internal/domain/teams"
	"github.com/okian/cambios/internal/domain/timeline"
	"github.com/okian/cambios/pkg/logger"
	"github.com/okian/cambios/pkg/metrics"
)

// ScanRequest is one document to analyze.
type ScanRequest struct {
	Source string   `json:"source"`
	Pages  []string `json:"pages"`
	// Page is 1-based; zero picks the default page.
	Page int `json:"page"`
}

// GoalAssignment says which side scored goal Index (0-based, document order). Team is
// the scorer's side; an own goal counts for the other side. An empty Team leaves the
// goal unassigned.
type GoalAssignment struct {
	Index   int    `json:"index"`
	Team    string `json:"team"`
	OwnGoal bool   `json:"own_goal"`
}

// SubstitutionAssignment says which side made substitution Index.
type SubstitutionAssignment struct {
	Index int    `json:"index"`
	Team  string `json:"team"`
}

// EvaluateRequest carries the user's classification of an analysis. Empty team names
// keep the analysis' current sides; a zero window keeps the service default.
type EvaluateRequest struct {
	FocusTeam          string                   `json:"focus_team"`
	OpponentTeam       string                   `json:"opponent_team"`
	WindowMinutes      int                      `json:"window_minutes"`
	RivalSubstitutions *bool                    `json:"rival_substitutions,omitempty"`
	Goals              []GoalAssignment         `json:"goals"`
	Substitutions      []SubstitutionAssignment `json:"substitutions"`
}

// Service implements the analysis use cases. It is safe for concurrent use.
type Service struct {
	store       repository.Store
	catalog     []teams.Team
	extraTeams  []teams.Team
	resolver    *teams.Resolver
	scanner     *scanner.Scanner
	scannerOpts []scanner.Option
	focusLabel  string
	window      int
	rival       bool
	defaultPage int
	startedAt   time.Time
	logger      logger.Logger

	analyses    atomic.Int64
	evaluations atomic.Int64
	failures    atomic.Int64
}

// New constructs a Service. Unless configured otherwise it keeps sessions in a
// go-cache store for an hour and focuses on Pumas.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:    teams.DefaultCatalog(),
		focusLabel: "pumas",
		window:     impact.DefaultWindow,
		startedAt:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewCacheStore()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.resolver = teams.NewResolver(s.catalog, teams.WithTeams(s.extraTeams))
	s.scanner = scanner.New(s.scannerOpts...)
	return s
}

// Resolver exposes the team resolver built from the configured catalog.
func (s *Service) Resolver() *teams.Resolver {
	return s.resolver
}

// Teams returns the effective catalog.
func (s *Service) Teams() []teams.Team {
	return s.resolver.Teams()
}

// SplitPages splits extracted text into pages on form feeds, the page break written by
// common PDF-to-text tools.
func SplitPages(text string) []string {
	return strings.Split(text, "\f")
}

func (s *Service) pageFor(requested, count int) int {
	if requested != 0 {
		return requested
	}
	if s.defaultPage > 0 && s.defaultPage <= count {
		return s.defaultPage
	}
	return pdftext.DefaultPage(count)
}

// Scan analyzes one page of a document and stores the result as a new session.
func (s *Service) Scan(ctx context.Context, req ScanRequest) (model.Analysis, error) {
	start := time.Now()
	if len(req.Pages) == 0 {
		return model.Analysis{}, s.fail(ctx, "no_pages", ErrNoPages)
	}
	page := s.pageFor(req.Page, len(req.Pages))
	if page < 1 || page > len(req.Pages) {
		return model.Analysis{}, s.fail(ctx, "page_out_of_range",
			fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, len(req.Pages)))
	}
	text := req.Pages[page-1]
	if strings.TrimSpace(text) == "" {
		return model.Analysis{}, s.fail(ctx, "no_text",
			fmt.Errorf("%w: page %d is blank, the file may be a scanned image", ErrNoText, page))
	}

	detection := s.resolver.Detect(strings.Join(req.Pages, "\n"))
	res := s.scanner.Scan(text)
	focus, opponent := s.suggestSides(detection.Teams)

	a := model.Analysis{
		ID:                uuid.NewString(),
		Source:            req.Source,
		CreatedAt:         time.Now().UTC(),
		PageCount:         len(req.Pages),
		Page:              page,
		PageText:          text,
		Scan:              res,
		DetectedTeams:     detection.Teams,
		DetectionStrategy: detection.Strategy,
		FocusTeam:         focus,
		OpponentTeam:      opponent,
	}
	if err := s.store.Save(ctx, a); err != nil {
		return model.Analysis{}, s.fail(ctx, "store", fmt.Errorf("save analysis: %w", err))
	}

	s.analyses.Add(1)
	metrics.RecordAnalysis(float64(time.Since(start).Milliseconds()))
	metrics.RecordEventsScanned(string(model.KindGoal), len(res.Goals))
	metrics.RecordEventsScanned(string(model.KindCard), len(res.Cards))
	metrics.RecordEventsScanned(string(model.KindSubstitution), len(res.Substitutions))
	metrics.RecordInvalidMinutes(res.InvalidMinutes())
	metrics.RecordTeamDetection(detection.Strategy)

	s.logger.Info(ctx, "analysis created",
		logger.String("analysis_id", a.ID),
		logger.String("source", a.Source),
		logger.Int("page", page),
		logger.Int("goals", len(res.Goals)),
		logger.Int("cards", len(res.Cards)),
		logger.Int("substitutions", len(res.Substitutions)),
		logger.String("detection", detection.Strategy),
	)
	if res.SubOrderAssumed && len(res.Substitutions) > 0 {
		s.logger.Warn(ctx, "substitution order assumed, first player read as leaving",
			logger.String("analysis_id", a.ID))
	}
	if n := res.InvalidMinutes(); n > 0 {
		s.logger.Warn(ctx, "events with unreadable minutes need review",
			logger.String("analysis_id", a.ID), logger.Int("count", n))
	}
	return a, nil
}

// Analyze adapts Scan to the batch worker contract.
func (s *Service) Analyze(ctx context.Context, doc model.Document) (model.Analysis, error) {
	return s.Scan(ctx, ScanRequest{Source: doc.Source, Pages: doc.Pages, Page: doc.Page})
}

// suggestSides keeps the configured focus and picks the first other detected team as
// the opponent. When the focus is not among two detected teams both are suggested.
func (s *Service) suggestSides(detected []model.TeamID) (model.TeamID, model.TeamID) {
	focus := s.resolver.Canonical(s.focusLabel)
	inDetected := false
	for _, id := range detected {
		if id == focus {
			inDetected = true
		}
	}
	if !inDetected && len(detected) == 2 {
		return detected[0], detected[1]
	}
	for _, id := range detected {
		if id != focus {
			return focus, id
		}
	}
	return focus, model.NoTeam
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, id string) (model.Analysis, error) {
	return s.store.Get(ctx, id)
}

// Evaluate applies the assignments to copies of the scanned events, rebuilds the score
// and classifies the substitutions. The report is stored on the session.
func (s *Service) Evaluate(ctx context.Context, id string, req EvaluateRequest) (model.ImpactReport, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return model.ImpactReport{}, err
	}

	window := s.window
	if req.WindowMinutes != 0 {
		if !impact.ValidWindow(req.WindowMinutes) {
			return model.ImpactReport{}, fmt.Errorf("%w: got %d", ErrInvalidWindow, req.WindowMinutes)
		}
		window = req.WindowMinutes
	}

	focus, opponent := a.FocusTeam, a.OpponentTeam
	if req.FocusTeam != "" {
		focus = s.resolver.Canonical(req.FocusTeam)
	}
	if req.OpponentTeam != "" {
		opponent = s.resolver.Canonical(req.OpponentTeam)
	}
	if focus == model.NoTeam || opponent == model.NoTeam || focus == opponent {
		return model.ImpactReport{}, fmt.Errorf("%w: focus %q and opponent %q must be two different teams",
			ErrInvalidAssignment, focus, opponent)
	}

	goals := append([]model.GoalEvent(nil), a.Scan.Goals...)
	for _, g := range req.Goals {
		if g.Index < 0 || g.Index >= len(goals) {
			return model.ImpactReport{}, fmt.Errorf("%w: goal %d does not exist", ErrInvalidAssignment, g.Index)
		}
		team, err := s.side(g.Team, focus, opponent)
		if err != nil {
			return model.ImpactReport{}, err
		}
		goals[g.Index].Team = team
		goals[g.Index].OwnGoal = g.OwnGoal
	}
	subs := append([]model.SubstitutionEvent(nil), a.Scan.Substitutions...)
	for _, sa := range req.Substitutions {
		if sa.Index < 0 || sa.Index >= len(subs) {
			return model.ImpactReport{}, fmt.Errorf("%w: substitution %d does not exist", ErrInvalidAssignment, sa.Index)
		}
		team, err := s.side(sa.Team, focus, opponent)
		if err != nil {
			return model.ImpactReport{}, err
		}
		subs[sa.Index].Team = team
	}

	rival := s.rival
	if req.RivalSubstitutions != nil {
		rival = *req.RivalSubstitutions
	}
	evaluator := impact.NewEvaluator(impact.WithWindow(window), impact.WithRivalSubstitutions(rival))
	tl := timeline.Build(goals, focus, opponent)

	report := model.ImpactReport{
		FocusTeam:     focus,
		OpponentTeam:  opponent,
		WindowMinutes: window,
		Goals:         goals,
		Substitutions: subs,
		Checkpoints:   tl.Checkpoints,
		FinalScore:    tl.Final(),
		Records:       evaluator.Evaluate(subs, goals, focus, opponent),
		ExcludedGoals: tl.Excluded,
		EvaluatedAt:   time.Now().UTC(),
	}

	a.FocusTeam, a.OpponentTeam = focus, opponent
	a.Report = &report
	if err := s.store.Save(ctx, a); err != nil {
		return model.ImpactReport{}, fmt.Errorf("save analysis: %w", err)
	}

	s.evaluations.Add(1)
	review := 0
	for _, r := range report.Records {
		metrics.RecordImpactLabel(string(r.Label))
		if r.NeedsReview {
			review++
		}
	}
	s.logger.Info(ctx, "impact evaluated",
		logger.String("analysis_id", id),
		logger.String("focus", string(focus)),
		logger.String("opponent", string(opponent)),
		logger.String("final", report.FinalScore.String()),
		logger.Int("records", len(report.Records)),
		logger.Int("needs_review", review),
		logger.Int("window", window),
	)
	return report, nil
}

// side maps an assignment label to focus, opponent or nobody.
func (s *Service) side(label string, focus, opponent model.TeamID) (model.TeamID, error) {
	if strings.TrimSpace(label) == "" {
		return model.NoTeam, nil
	}
	switch id := s.resolver.Canonical(label); id {
	case focus, opponent:
		return id, nil
	default:
		return model.NoTeam, fmt.Errorf("%w: %q is neither %q nor %q", ErrInvalidAssignment, label, focus, opponent)
	}
}

// Delete drops a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	order, assumed := s.scanner.Order()
	sessions := s.store.Count(context.Background())
	metrics.UpdateSessionsActive(sessions)
	return map[string]interface{}{
		"uptime_seconds":      int64(time.Since(s.startedAt).Seconds()),
		"sessions":            sessions,
		"analyses":            s.analyses.Load(),
		"evaluations":         s.evaluations.Load(),
		"failures":            s.failures.Load(),
		"window_minutes":      s.window,
		"focus_team":          string(s.resolver.Canonical(s.focusLabel)),
		"sub_order":           order.String(),
		"sub_order_assumed":   assumed,
		"rival_substitutions": s.rival,
		"teams":               len(s.resolver.Teams()),
	}
}

func (s *Service) fail(ctx context.Context, reason string, err error) error {
	s.failures.Add(1)
	metrics.RecordAnalysisError(reason)
	s.logger.Warn(ctx, "analysis rejected", logger.String("reason", reason), logger.Error(err))
	return err
}
