// Package timeline rebuilds the running score of a match from its goals.
package timeline

import (
	"sort"

	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/types"
)

// Timeline is the minute-ordered list of score checkpoints.
type Timeline struct {
	Checkpoints []model.ScoreCheckpoint `json:"checkpoints" yaml:"checkpoints"`
	// Excluded holds indices (into the goals passed to Build) of goals whose minute
	// could not be parsed. They are not in the checkpoints and need manual review.
	Excluded []int `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

// Build orders goals by minute, keeping the input order for equal minutes, and emits a
// checkpoint per goal. Goals credited to neither side still produce a checkpoint, with
// the score unchanged.
func Build(goals []model.GoalEvent, focus, opponent model.TeamID) Timeline {
	idx := make([]int, 0, len(goals))
	tl := Timeline{Checkpoints: []model.ScoreCheckpoint{}}
	for i, g := range goals {
		if !g.Minute.Valid() {
			tl.Excluded = append(tl.Excluded, i)
			continue
		}
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return goals[idx[a]].Minute < goals[idx[b]].Minute
	})

	var score types.Score
	for _, i := range idx {
		g := goals[i]
		switch model.CreditedTo(g, focus, opponent) {
		case model.NoTeam:
		case focus:
			score.Focus++
		case opponent:
			score.Opponent++
		}
		tl.Checkpoints = append(tl.Checkpoints, model.ScoreCheckpoint{
			Minute:   g.Minute.Int(),
			Focus:    score.Focus,
			Opponent: score.Opponent,
		})
	}
	return tl
}

// ScoreAt returns the score held by the last checkpoint at or before minute t, or 0-0.
func (tl Timeline) ScoreAt(t int) types.Score {
	n := sort.Search(len(tl.Checkpoints), func(i int) bool {
		return tl.Checkpoints[i].Minute > t
	})
	if n == 0 {
		return types.Score{}
	}
	c := tl.Checkpoints[n-1]
	return types.Score{Focus: c.Focus, Opponent: c.Opponent}
}

// Final returns the score after the last goal, or 0-0.
func (tl Timeline) Final() types.Score {
	if len(tl.Checkpoints) == 0 {
		return types.Score{}
	}
	c := tl.Checkpoints[len(tl.Checkpoints)-1]
	return types.Score{Focus: c.Focus, Opponent: c.Opponent}
}
