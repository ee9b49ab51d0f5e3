package impact_test

import (
	"fmt"
	"testing"

	"github.com/okian/cambios/internal/domain/impact"
	"github.com/okian/cambios/internal/domain/minute"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/scanner"
	"github.com/okian/cambios/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	focus model.TeamID = "pumas"
	rival model.TeamID = "tigres"
)

func TestPointsOf(t *testing.T) {
	Convey("Points follow win, draw and loss", t, func() {
		So(impact.PointsOf(2, 1), ShouldEqual, 3)
		So(impact.PointsOf(1, 1), ShouldEqual, 1)
		So(impact.PointsOf(0, 0), ShouldEqual, 1)
		So(impact.PointsOf(0, 3), ShouldEqual, 0)
	})
}

func TestLabelFor(t *testing.T) {
	cases := []struct {
		atSub, final int
		want         impact.Label
	}{
		{0, 3, impact.VeryPositive},
		{0, 1, impact.Moderate},
		{0, 0, impact.Neutral},
		{1, 3, impact.Positive},
		{1, 1, impact.Neutral},
		{1, 0, impact.Negative},
		{3, 3, impact.Neutral},
		{3, 1, impact.Negative},
		{3, 0, impact.VeryNegative},
	}

	Convey("Every reachable points pair maps to its label", t, func() {
		for _, tc := range cases {
			Convey(fmt.Sprintf("(%d, %d) is %s", tc.atSub, tc.final, tc.want), func() {
				So(impact.LabelFor(tc.atSub, tc.final), ShouldEqual, tc.want)
			})
		}
	})

	Convey("Unreachable pairs are unclassified", t, func() {
		So(impact.LabelFor(2, 3), ShouldEqual, impact.Unclassified)
		So(impact.LabelFor(-1, 0), ShouldEqual, impact.Unclassified)
		So(impact.LabelFor(3, 4), ShouldEqual, impact.Unclassified)
	})
}

func TestClassify(t *testing.T) {
	Convey("Classify derives points from both scores", t, func() {
		c := impact.Classify(types.Score{Focus: 0, Opponent: 1}, types.Score{Focus: 2, Opponent: 1})
		So(c.PointsAtSub, ShouldEqual, 0)
		So(c.PointsFinal, ShouldEqual, 3)
		So(c.Label, ShouldEqual, impact.VeryPositive)
	})
}

func TestWindowedDelta(t *testing.T) {
	Convey("Given a substitution at minute 90 and a 10 minute window", t, func() {
		goals := []model.GoalEvent{
			{Minute: 90, Team: focus},
			{Minute: 95, Team: rival},
			{Minute: 100, Team: focus},
			{Minute: 101, Team: focus},
			{Minute: minute.Invalid, Team: focus},
			{Minute: 97, Team: rival, OwnGoal: true},
			{Minute: 98},
		}

		Convey("Then only goals in (90, 100] count", func() {
			gf, ga := impact.WindowedDelta(goals, focus, rival, 90, 10)
			So(gf, ShouldEqual, 2)
			So(ga, ShouldEqual, 1)
		})

		Convey("And the same goals read the other way from the rival", func() {
			gf, ga := impact.WindowedDelta(goals, rival, focus, 90, 10)
			So(gf, ShouldEqual, 1)
			So(ga, ShouldEqual, 2)
		})
	})
}

func TestEvaluator(t *testing.T) {
	Convey("Given the scanned match report", t, func() {
		res := scanner.New(scanner.WithSubstitutionOrder(scanner.OrderOutFirst)).Scan(
			"Gol de (9) Ana Perez Min: 10 (15) Maria Lopez por (7) Rosa Diaz Min: 60 Gol de (11) Luz Gomez Min: 75")
		So(res.Goals, ShouldHaveLength, 2)
		So(res.Substitutions, ShouldHaveLength, 1)

		goals := append([]model.GoalEvent(nil), res.Goals...)
		subs := append([]model.SubstitutionEvent(nil), res.Substitutions...)
		for i := range goals {
			goals[i].Team = focus
		}
		subs[0].Team = focus

		Convey("When both goals and the substitution belong to the focus team", func() {
			recs := impact.NewEvaluator().Evaluate(subs, goals, focus, rival)

			Convey("Then the win is held and the substitution is NEUTRAL", func() {
				So(recs, ShouldHaveLength, 1)
				r := recs[0]
				So(r.ScoreAtSub, ShouldResemble, types.Score{Focus: 1, Opponent: 0})
				So(r.FinalScore, ShouldResemble, types.Score{Focus: 2, Opponent: 0})
				So(r.PointsAtSub, ShouldEqual, 3)
				So(r.PointsFinal, ShouldEqual, 3)
				So(r.Label, ShouldEqual, impact.Neutral)
				So(r.WindowMinutes, ShouldEqual, impact.DefaultWindow)
				So(r.GoalsForInWindow, ShouldEqual, 1)
				So(r.GoalsAgainstInWindow, ShouldEqual, 0)
				So(r.NeedsReview, ShouldBeFalse)
			})
		})

		Convey("When the first goal is unassigned", func() {
			goals[0].Team = model.NoTeam
			recs := impact.NewEvaluator().Evaluate(subs, goals, focus, rival)

			Convey("Then the score at minute 60 is level and the label is POSITIVE", func() {
				So(recs[0].ScoreAtSub, ShouldResemble, types.Score{})
				So(recs[0].PointsAtSub, ShouldEqual, 1)
				So(recs[0].PointsFinal, ShouldEqual, 3)
				So(recs[0].Label, ShouldEqual, impact.Positive)
			})
		})
	})

	Convey("Given substitutions on both sides", t, func() {
		goals := []model.GoalEvent{{Minute: 20, Team: rival}, {Minute: 70, Team: focus}, {Minute: 80, Team: focus}}
		subs := []model.SubstitutionEvent{
			{Minute: 46, Team: rival},
			{Minute: 55, Team: focus},
			{Minute: 60},
			{Minute: minute.Invalid, MinuteText: "60+x", Team: focus},
		}

		Convey("By default only the focus team is evaluated", func() {
			recs := impact.NewEvaluator().Evaluate(subs, goals, focus, rival)
			So(recs, ShouldHaveLength, 2)
			So(recs[0].Label, ShouldEqual, impact.VeryPositive)
			So(recs[1].Label, ShouldEqual, impact.Unclassified)
			So(recs[1].NeedsReview, ShouldBeTrue)
		})

		Convey("With rival substitutions the rival is scored from its side", func() {
			recs := impact.NewEvaluator(impact.WithRivalSubstitutions(true), impact.WithWindow(30)).
				Evaluate(subs, goals, focus, rival)
			So(recs, ShouldHaveLength, 3)
			r := recs[0]
			So(r.ScoreAtSub, ShouldResemble, types.Score{Focus: 1, Opponent: 0})
			So(r.FinalScore, ShouldResemble, types.Score{Focus: 1, Opponent: 2})
			So(r.Label, ShouldEqual, impact.VeryNegative)
			So(r.WindowMinutes, ShouldEqual, 30)
			So(r.GoalsForInWindow, ShouldEqual, 0)
			So(r.GoalsAgainstInWindow, ShouldEqual, 1)
		})
	})

	Convey("Windows outside 5..30 are ignored", t, func() {
		So(impact.NewEvaluator(impact.WithWindow(4)).Window(), ShouldEqual, impact.DefaultWindow)
		So(impact.NewEvaluator(impact.WithWindow(31)).Window(), ShouldEqual, impact.DefaultWindow)
		So(impact.NewEvaluator(impact.WithWindow(5)).Window(), ShouldEqual, 5)
		So(impact.ValidWindow(30), ShouldBeTrue)
	})
}
