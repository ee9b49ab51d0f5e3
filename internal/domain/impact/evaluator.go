package impact

import (
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/timeline"
)

// Evaluator turns assigned substitutions and goals into impact records. It holds only
// configuration and is safe for concurrent use.
type Evaluator struct {
	window int
	rival  bool
}

// NewEvaluator returns an Evaluator with a 15 minute window that evaluates the focus
// team's substitutions only.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{window: DefaultWindow}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Window returns the configured window in minutes.
func (e *Evaluator) Window() int { return e.window }

// Evaluate returns one record per substitution that belongs to focus (or to opponent
// when rival evaluation is on), in input order. Scores in each record are from the
// substituting side. A substitution with an invalid minute is returned Unclassified
// with NeedsReview set.
func (e *Evaluator) Evaluate(subs []model.SubstitutionEvent, goals []model.GoalEvent, focus, opponent model.TeamID) []model.ImpactRecord {
	tl := timeline.Build(goals, focus, opponent)
	final := tl.Final()
	records := make([]model.ImpactRecord, 0, len(subs))

	for _, s := range subs {
		var mine, theirs model.TeamID
		switch {
		case s.Team == model.NoTeam:
			continue
		case s.Team == focus:
			mine, theirs = focus, opponent
		case s.Team == opponent && e.rival:
			mine, theirs = opponent, focus
		default:
			continue
		}

		rec := model.ImpactRecord{Substitution: s, WindowMinutes: e.window}
		if !s.Minute.Valid() {
			rec.Label = Unclassified
			rec.NeedsReview = true
			records = append(records, rec)
			continue
		}

		atSub := tl.ScoreAt(s.Minute.Int())
		end := final
		if mine != focus {
			atSub, end = atSub.Flip(), end.Flip()
		}
		c := Classify(atSub, end)
		rec.ScoreAtSub = atSub
		rec.PointsAtSub = c.PointsAtSub
		rec.FinalScore = end
		rec.PointsFinal = c.PointsFinal
		rec.Label = c.Label
		rec.GoalsForInWindow, rec.GoalsAgainstInWindow = WindowedDelta(goals, mine, theirs, s.Minute.Int(), e.window)
		// Goals missing from the timeline leave the scores unreliable.
		rec.NeedsReview = len(tl.Excluded) > 0
		records = append(records, rec)
	}
	return records
}
