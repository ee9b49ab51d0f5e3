package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/cambios/internal/app"
	"github.com/okian/cambios/internal/domain/impact"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/scanner"
	"github.com/okian/cambios/internal/domain/teams"
	"github.com/okian/cambios/internal/domain/types"
	"github.com/okian/cambios/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const (
	cover  = "FEDERACION MEXICANA DE FUTBOL\nLiga MX Femenil Jornada 9\nPumas UNAM vs Tigres UANL"
	report = "INFORME ARBITRAL\nGol de (9) Ana Perez Min: 10\n(15) Maria Lopez por (7) Rosa Diaz Min: 60\nGol de (11) Luz Gomez Min: 75"
)

func TestService_Scan(t *testing.T) {
	Convey("Given a service with the default catalog", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSubstitutionOrder(scanner.OrderOutFirst))

		Convey("When scanning a two-page report without naming a page", func() {
			a, err := svc.Scan(ctx, service.ScanRequest{Source: "informe.pdf", Pages: []string{cover, report}})

			Convey("Then page 2 is scanned and the teams are suggested", func() {
				So(err, ShouldBeNil)
				So(a.ID, ShouldNotBeEmpty)
				So(a.Page, ShouldEqual, 2)
				So(a.PageCount, ShouldEqual, 2)
				So(a.Scan.Goals, ShouldHaveLength, 2)
				So(a.Scan.Substitutions, ShouldHaveLength, 1)
				So(a.Scan.SubOrderAssumed, ShouldBeFalse)
				So(a.DetectionStrategy, ShouldEqual, teams.StrategyVersus)
				So(a.FocusTeam, ShouldEqual, model.TeamID("pumas"))
				So(a.OpponentTeam, ShouldEqual, model.TeamID("tigres"))
			})

			Convey("And the session can be read back", func() {
				got, err := svc.Get(ctx, a.ID)
				So(err, ShouldBeNil)
				So(got.PageText, ShouldEqual, report)
				So(svc.GetStats()["analyses"], ShouldEqual, int64(1))
			})
		})

		Convey("When the request is invalid", func() {
			_, err := svc.Scan(ctx, service.ScanRequest{})
			So(errors.Is(err, service.ErrNoPages), ShouldBeTrue)

			_, err = svc.Scan(ctx, service.ScanRequest{Pages: []string{report}, Page: 3})
			So(errors.Is(err, service.ErrPageOutOfRange), ShouldBeTrue)

			_, err = svc.Scan(ctx, service.ScanRequest{Pages: []string{cover, "  \n "}})
			So(errors.Is(err, service.ErrNoText), ShouldBeTrue)
			So(svc.GetStats()["failures"], ShouldEqual, int64(3))
		})

		Convey("When the session is unknown", func() {
			_, err := svc.Get(ctx, "nope")
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a service without a configured substitution order", t, func() {
		svc := service.New(service.WithDefaultPage(1))
		a, err := svc.Scan(context.Background(), service.ScanRequest{Pages: []string{report, cover}})

		Convey("Then the result is flagged as assumed", func() {
			So(err, ShouldBeNil)
			So(a.Page, ShouldEqual, 1)
			So(a.Scan.SubOrderAssumed, ShouldBeTrue)
			So(svc.GetStats()["sub_order_assumed"], ShouldEqual, true)
		})
	})
}

func TestService_Evaluate(t *testing.T) {
	Convey("Given a scanned report", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithSubstitutionOrder(scanner.OrderOutFirst))
		a, err := svc.Scan(ctx, service.ScanRequest{Pages: []string{cover, report}})
		So(err, ShouldBeNil)

		Convey("When the second goal and the substitution go to the focus team", func() {
			rep, err := svc.Evaluate(ctx, a.ID, service.EvaluateRequest{
				Goals:         []service.GoalAssignment{{Index: 1, Team: "Pumas"}},
				Substitutions: []service.SubstitutionAssignment{{Index: 0, Team: "pumas"}},
			})

			Convey("Then the substitution is POSITIVE", func() {
				So(err, ShouldBeNil)
				So(rep.FinalScore, ShouldResemble, types.Score{Focus: 1})
				So(rep.Records, ShouldHaveLength, 1)
				So(rep.Records[0].PointsAtSub, ShouldEqual, 1)
				So(rep.Records[0].PointsFinal, ShouldEqual, 3)
				So(rep.Records[0].Label, ShouldEqual, impact.Positive)
				So(rep.WindowMinutes, ShouldEqual, impact.DefaultWindow)
			})

			Convey("And the report is kept on the session without touching the scan", func() {
				got, err := svc.Get(ctx, a.ID)
				So(err, ShouldBeNil)
				So(got.Report, ShouldNotBeNil)
				So(got.Report.Records, ShouldHaveLength, 1)
				So(got.Scan.Goals[1].Team, ShouldEqual, model.NoTeam)
			})
		})

		Convey("When both goals go to the focus team", func() {
			rep, err := svc.Evaluate(ctx, a.ID, service.EvaluateRequest{
				Goals: []service.GoalAssignment{
					{Index: 0, Team: "pumas"},
					{Index: 1, Team: "pumas"},
				},
				Substitutions: []service.SubstitutionAssignment{{Index: 0, Team: "pumas"}},
			})

			Convey("Then the substitution keeps a winning result and is NEUTRAL", func() {
				So(err, ShouldBeNil)
				So(rep.FinalScore, ShouldResemble, types.Score{Focus: 2})
				So(rep.Records[0].ScoreAtSub, ShouldResemble, types.Score{Focus: 1})
				So(rep.Records[0].Label, ShouldEqual, impact.Neutral)
			})
		})

		Convey("When the first goal is an own goal by the rival", func() {
			rep, err := svc.Evaluate(ctx, a.ID, service.EvaluateRequest{
				WindowMinutes: 30,
				Goals: []service.GoalAssignment{
					{Index: 0, Team: "tigres", OwnGoal: true},
					{Index: 1, Team: "tigres"},
				},
				Substitutions: []service.SubstitutionAssignment{{Index: 0, Team: "pumas"}},
			})

			Convey("Then it counts for the focus team", func() {
				So(err, ShouldBeNil)
				So(rep.FinalScore, ShouldResemble, types.Score{Focus: 1, Opponent: 1})
				So(rep.Records[0].ScoreAtSub, ShouldResemble, types.Score{Focus: 1})
				So(rep.Records[0].Label, ShouldEqual, impact.Negative)
				So(rep.Records[0].GoalsAgainstInWindow, ShouldEqual, 1)
			})
		})

		Convey("When a free-text opponent is used", func() {
			rep, err := svc.Evaluate(ctx, a.ID, service.EvaluateRequest{
				OpponentTeam: "Real Madrid",
				Goals:        []service.GoalAssignment{{Index: 0, Team: "Real Madrid"}},
			})
			So(err, ShouldBeNil)
			So(rep.OpponentTeam, ShouldEqual, model.TeamID("real madrid"))
			So(rep.FinalScore, ShouldResemble, types.Score{Opponent: 1})
			So(rep.Records, ShouldBeEmpty)
		})

		Convey("When assignments are wrong", func() {
			_, err := svc.Evaluate(ctx, a.ID, service.EvaluateRequest{Goals: []service.GoalAssignment{{Index: 5, Team: "pumas"}}})
			So(errors.Is(err, service.ErrInvalidAssignment), ShouldBeTrue)

			_, err = svc.Evaluate(ctx, a.ID, service.EvaluateRequest{Goals: []service.GoalAssignment{{Index: 0, Team: "Chivas"}}})
			So(errors.Is(err, service.ErrInvalidAssignment), ShouldBeTrue)

			_, err = svc.Evaluate(ctx, a.ID, service.EvaluateRequest{OpponentTeam: "pumas"})
			So(errors.Is(err, service.ErrInvalidAssignment), ShouldBeTrue)

			_, err = svc.Evaluate(ctx, a.ID, service.EvaluateRequest{WindowMinutes: 45})
			So(errors.Is(err, service.ErrInvalidWindow), ShouldBeTrue)

			_, err = svc.Evaluate(ctx, "nope", service.EvaluateRequest{})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Analyze(t *testing.T) {
	Convey("Analyze runs a batch document through Scan", t, func() {
		svc := service.New(service.WithExtraTeams([]teams.Team{{ID: "cancun", Display: "Cancún FC", Aliases: []string{"cancun"}}}))
		a, err := svc.Analyze(context.Background(), model.Document{
			Source: "cancun.txt",
			Pages:  service.SplitPages("Cancún FC vs Pumas\f" + report),
		})
		So(err, ShouldBeNil)
		So(a.Page, ShouldEqual, 2)
		So(a.DetectedTeams, ShouldResemble, []model.TeamID{"cancun", "pumas"})
		So(a.OpponentTeam, ShouldEqual, model.TeamID("cancun"))
		So(len(svc.Teams()), ShouldEqual, len(teams.DefaultCatalog())+1)
	})
}
