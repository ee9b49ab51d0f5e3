package model

import (
	"time"

	"github.com/okian/cambios/internal/domain/types"
)

// Label is the qualitative outcome of a substitution.
type Label string

// Impact labels. Unclassified is only produced for unreachable point pairs or
// substitutions that need manual correction.
const (
	LabelVeryPositive Label = "VERY POSITIVE"
	LabelPositive     Label = "POSITIVE"
	LabelModerate     Label = "MODERATE"
	LabelNeutral      Label = "NEUTRAL"
	LabelNegative     Label = "NEGATIVE"
	LabelVeryNegative Label = "VERY NEGATIVE"
	LabelUnclassified Label = "UNCLASSIFIED"
)

// ImpactRecord is the evaluation of one substitution. Scores are from the
// substituting side's perspective (mine, theirs).
type ImpactRecord struct {
	Substitution         SubstitutionEvent `json:"substitution" yaml:"substitution"`
	ScoreAtSub           types.Score       `json:"score_at_sub" yaml:"score_at_sub"`
	PointsAtSub          int               `json:"points_at_sub" yaml:"points_at_sub"`
	FinalScore           types.Score       `json:"final_score" yaml:"final_score"`
	PointsFinal          int               `json:"points_final" yaml:"points_final"`
	Label                Label             `json:"impact_label" yaml:"impact_label"`
	WindowMinutes        int               `json:"window_minutes" yaml:"window_minutes"`
	GoalsForInWindow     int               `json:"goals_for_in_window" yaml:"goals_for_in_window"`
	GoalsAgainstInWindow int               `json:"goals_against_in_window" yaml:"goals_against_in_window"`
	NeedsReview          bool              `json:"needs_review" yaml:"needs_review"`
}

// WindowDifferential is goals for minus goals against inside the window.
func (r ImpactRecord) WindowDifferential() int {
	return r.GoalsForInWindow - r.GoalsAgainstInWindow
}

// ImpactReport is the outcome of evaluating one analysis with a set of assignments.
type ImpactReport struct {
	FocusTeam     TeamID              `json:"focus_team" yaml:"focus_team"`
	OpponentTeam  TeamID              `json:"opponent_team" yaml:"opponent_team"`
	WindowMinutes int                 `json:"window_minutes" yaml:"window_minutes"`
	Goals         []GoalEvent         `json:"goals" yaml:"goals"`
	Substitutions []SubstitutionEvent `json:"substitutions" yaml:"substitutions"`
	Checkpoints   []ScoreCheckpoint   `json:"checkpoints" yaml:"checkpoints"`
	FinalScore    types.Score         `json:"final_score" yaml:"final_score"`
	Records       []ImpactRecord      `json:"records" yaml:"records"`
	// ExcludedGoals lists goal indices left out of the score because their minute
	// could not be parsed.
	ExcludedGoals []int     `json:"excluded_goals,omitempty" yaml:"excluded_goals,omitempty"`
	EvaluatedAt   time.Time `json:"evaluated_at" yaml:"evaluated_at"`
}
