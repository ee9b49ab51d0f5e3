package timeline_test

import (
	"testing"

	"github.com/okian/cambios/internal/domain/minute"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/timeline"
	"github.com/okian/cambios/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	focus model.TeamID = "pumas"
	rival model.TeamID = "tigres"
)

func goal(m minute.Value, team model.TeamID, own bool) model.GoalEvent {
	return model.GoalEvent{Minute: m, MinuteText: m.String(), Team: team, OwnGoal: own}
}

func TestBuild(t *testing.T) {
	Convey("Given goals listed out of minute order", t, func() {
		goals := []model.GoalEvent{
			goal(75, focus, false),
			goal(10, rival, false),
			goal(93, rival, true),
			goal(40, model.NoTeam, false),
			goal(minute.Invalid, focus, false),
			goal(75, rival, false),
		}
		tl := timeline.Build(goals, focus, rival)

		Convey("Then checkpoints are minute ordered and stable for ties", func() {
			So(tl.Checkpoints, ShouldResemble, []model.ScoreCheckpoint{
				{Minute: 10, Focus: 0, Opponent: 1},
				{Minute: 40, Focus: 0, Opponent: 1},
				{Minute: 75, Focus: 1, Opponent: 1},
				{Minute: 75, Focus: 1, Opponent: 2},
				{Minute: 93, Focus: 2, Opponent: 2},
			})
		})

		Convey("And the goal with an invalid minute is excluded", func() {
			So(tl.Excluded, ShouldResemble, []int{4})
		})

		Convey("And the final score counts the own goal for the other side", func() {
			So(tl.Final(), ShouldResemble, types.Score{Focus: 2, Opponent: 2})
		})

		Convey("And the input slice is not reordered", func() {
			So(goals[0].Minute, ShouldEqual, minute.Value(75))
		})
	})
}

func TestScoreAt(t *testing.T) {
	Convey("Given a built timeline", t, func() {
		goals := []model.GoalEvent{goal(10, focus, false), goal(60, rival, false), goal(60, focus, false)}
		tl := timeline.Build(goals, focus, rival)

		Convey("Before any goal the score is 0-0", func() {
			So(tl.ScoreAt(0), ShouldResemble, types.Score{})
			So(tl.ScoreAt(9), ShouldResemble, types.Score{})
		})

		Convey("At a goal minute the goal counts", func() {
			So(tl.ScoreAt(10), ShouldResemble, types.Score{Focus: 1})
			So(tl.ScoreAt(60), ShouldResemble, types.Score{Focus: 2, Opponent: 1})
		})

		Convey("Every goal is reflected at its own minute", func() {
			for _, g := range goals {
				s := tl.ScoreAt(g.Minute.Int())
				So(s.Focus+s.Opponent, ShouldBeGreaterThan, 0)
			}
		})

		Convey("The score never decreases over time", func() {
			prev := tl.ScoreAt(0)
			for m := 1; m <= 120; m++ {
				cur := tl.ScoreAt(m)
				So(cur.Focus, ShouldBeGreaterThanOrEqualTo, prev.Focus)
				So(cur.Opponent, ShouldBeGreaterThanOrEqualTo, prev.Opponent)
				prev = cur
			}
			So(prev, ShouldResemble, tl.Final())
		})
	})

	Convey("An empty timeline is 0-0 throughout", t, func() {
		tl := timeline.Build(nil, focus, rival)
		So(tl.Checkpoints, ShouldBeEmpty)
		So(tl.ScoreAt(90), ShouldResemble, types.Score{})
		So(tl.Final(), ShouldResemble, types.Score{})
	})
}
