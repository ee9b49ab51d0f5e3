// Package impact classifies substitutions by the points swing between the moment they
// happened and full time, and by goals scored shortly after.
package impact

import (
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/types"
)

// Label aliases the model label so callers need only this package.
type Label = model.Label

// Labels, re-exported.
const (
	VeryPositive = model.LabelVeryPositive
	Positive     = model.LabelPositive
	Moderate     = model.LabelModerate
	Neutral      = model.LabelNeutral
	Negative     = model.LabelNegative
	VeryNegative = model.LabelVeryNegative
	Unclassified = model.LabelUnclassified
)

// PointsOf returns 3 for a win, 1 for a draw and 0 for a loss.
func PointsOf(mine, theirs int) int {
	switch {
	case mine > theirs:
		return 3
	case mine == theirs:
		return 1
	default:
		return 0
	}
}

type pointsPair struct{ atSub, final int }

var table = map[pointsPair]Label{
	{0, 3}: VeryPositive,
	{0, 1}: Moderate,
	{0, 0}: Neutral,
	{1, 3}: Positive,
	{1, 1}: Neutral,
	{1, 0}: Negative,
	{3, 3}: Neutral,
	{3, 1}: Negative,
	{3, 0}: VeryNegative,
}

// LabelFor maps (points at the substitution, points at full time) to a label. Pairs
// outside {0,1,3}x{0,1,3} are Unclassified.
func LabelFor(pointsAtSub, pointsFinal int) Label {
	if l, ok := table[pointsPair{pointsAtSub, pointsFinal}]; ok {
		return l
	}
	return Unclassified
}

// Classification is the points-based verdict for one substitution.
type Classification struct {
	PointsAtSub int
	PointsFinal int
	Label       Label
}

// Classify evaluates two scores given as (mine, theirs).
func Classify(atSub, final types.Score) Classification {
	c := Classification{
		PointsAtSub: PointsOf(atSub.Focus, atSub.Opponent),
		PointsFinal: PointsOf(final.Focus, final.Opponent),
	}
	c.Label = LabelFor(c.PointsAtSub, c.PointsFinal)
	return c
}

// WindowedDelta counts goals credited to team (for) and rival (against) with a minute
// in (subMinute, subMinute+window]. Goals with an invalid minute never count.
func WindowedDelta(goals []model.GoalEvent, team, rival model.TeamID, subMinute, window int) (goalsFor, goalsAgainst int) {
	lo, hi := subMinute, subMinute+window
	for _, g := range goals {
		if !g.Minute.Valid() {
			continue
		}
		m := g.Minute.Int()
		if m <= lo || m > hi {
			continue
		}
		switch model.CreditedTo(g, team, rival) {
		case model.NoTeam:
		case team:
			goalsFor++
		case rival:
			goalsAgainst++
		}
	}
	return goalsFor, goalsAgainst
}
