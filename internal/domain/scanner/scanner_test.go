package scanner_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/cambios/internal/domain/minute"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/internal/domain/scanner"
	. "github.com/smartystreets/goconvey/convey"
)

const matchReport = "Gol de (9) Ana Perez Min: 10 (15) Maria Lopez por (7) Rosa Diaz Min: 60 Gol de (11) Luz Gomez Min: 75"

func TestNormalize(t *testing.T) {
	Convey("Whitespace runs collapse to one space", t, func() {
		So(scanner.Normalize("  Gol de\n(9)\t Ana \r\n Perez  "), ShouldEqual, "Gol de (9) Ana Perez")
		So(scanner.Normalize(""), ShouldEqual, "")
		So(scanner.Normalize("\n\t "), ShouldEqual, "")
	})
}

func TestScan_MatchReport(t *testing.T) {
	Convey("Given a report with two goals and a substitution", t, func() {
		s := scanner.New(scanner.WithSubstitutionOrder(scanner.OrderOutFirst))
		res := s.Scan(matchReport)

		Convey("Then both goals are found in order", func() {
			want := []model.GoalEvent{
				{Dorsal: "9", PlayerName: "Ana Perez", MinuteText: "10", Minute: 10},
				{Dorsal: "11", PlayerName: "Luz Gomez", MinuteText: "75", Minute: 75},
			}
			So(cmp.Diff(want, res.Goals), ShouldBeEmpty)
		})

		Convey("And the first pair of the substitution leaves", func() {
			want := []model.SubstitutionEvent{{
				Out:        model.Player{Dorsal: "15", Name: "Maria Lopez"},
				In:         model.Player{Dorsal: "7", Name: "Rosa Diaz"},
				MinuteText: "60",
				Minute:     60,
			}}
			So(cmp.Diff(want, res.Substitutions), ShouldBeEmpty)
		})

		Convey("And the timeline follows document order", func() {
			So(res.Timeline, ShouldHaveLength, 3)
			So(res.Timeline[0].Kind, ShouldEqual, model.KindGoal)
			So(res.Timeline[1].Kind, ShouldEqual, model.KindSubstitution)
			So(res.Timeline[2].Kind, ShouldEqual, model.KindGoal)
			for i, e := range res.Timeline {
				So(e.Order, ShouldEqual, i)
			}
		})

		Convey("And the order was not assumed", func() {
			So(res.SubOrderAssumed, ShouldBeFalse)
			So(res.Cards, ShouldNotBeNil)
			So(res.Cards, ShouldBeEmpty)
		})
	})
}

func TestScan_SubstitutionOrder(t *testing.T) {
	Convey("Given the substitution line alone", t, func() {
		text := "(15) Maria Lopez por (7) Rosa Diaz Min: 60"

		Convey("When no order is configured", func() {
			res := scanner.New().Scan(text)

			Convey("Then the first pair leaves and the result says so", func() {
				So(res.SubOrderAssumed, ShouldBeTrue)
				So(res.Substitutions[0].Out.Name, ShouldEqual, "Maria Lopez")
			})
		})

		Convey("When the first pair is configured as entering", func() {
			res := scanner.New(scanner.WithSubstitutionOrder(scanner.OrderInFirst)).Scan(text)

			Convey("Then the pairs swap", func() {
				So(res.SubOrderAssumed, ShouldBeFalse)
				So(res.Substitutions[0].Out, ShouldResemble, model.Player{Dorsal: "7", Name: "Rosa Diaz"})
				So(res.Substitutions[0].In, ShouldResemble, model.Player{Dorsal: "15", Name: "Maria Lopez"})
			})
		})
	})
}

func TestScan_RoundTrip(t *testing.T) {
	Convey("Given events joined with separators in a known order", t, func() {
		lines := []string{
			"Amarilla de (4) Sofia Ramirez Min: 12",
			"Gol de (10) Karla 2 Nava Min: 33",
			"(8) Ana Lucia Paz por (19) Dana Ruiz Min: 46",
			"Roja Directa de (3) Eva Soto Min: 58",
			"Gol de (22) Ximena O'Neil Min: 90+3",
			"Roja (doble amarilla) de (4) Sofia Ramirez Min: 88",
			"Roja de (6) Ines Toro Min: 120",
		}
		text := strings.Join(lines, "\n  ")
		res := scanner.New(scanner.WithSubstitutionOrder(scanner.OrderOutFirst)).Scan(text)

		Convey("Then every event is recovered with its fields", func() {
			So(cmp.Diff([]model.GoalEvent{
				{Dorsal: "10", PlayerName: "Karla 2 Nava", MinuteText: "33", Minute: 33},
				{Dorsal: "22", PlayerName: "Ximena O'Neil", MinuteText: "90+3", Minute: 93},
			}, res.Goals), ShouldBeEmpty)

			So(cmp.Diff([]model.CardEvent{
				{Kind: model.CardYellow, Dorsal: "4", PlayerName: "Sofia Ramirez", MinuteText: "12", Minute: 12},
				{Kind: model.CardRed, Dorsal: "3", PlayerName: "Eva Soto", MinuteText: "58", Minute: 58},
				{Kind: model.CardRedDouble, Dorsal: "4", PlayerName: "Sofia Ramirez", MinuteText: "88", Minute: 88},
				{Kind: model.CardRed, Dorsal: "6", PlayerName: "Ines Toro", MinuteText: "120", Minute: 120},
			}, res.Cards), ShouldBeEmpty)

			So(cmp.Diff([]model.SubstitutionEvent{{
				Out:        model.Player{Dorsal: "8", Name: "Ana Lucia Paz"},
				In:         model.Player{Dorsal: "19", Name: "Dana Ruiz"},
				MinuteText: "46",
				Minute:     46,
			}}, res.Substitutions), ShouldBeEmpty)
		})

		Convey("And the timeline kinds follow the input order", func() {
			kinds := make([]model.EventKind, 0, len(res.Timeline))
			for _, e := range res.Timeline {
				kinds = append(kinds, e.Kind)
			}
			So(kinds, ShouldResemble, []model.EventKind{
				model.KindCard, model.KindGoal, model.KindSubstitution, model.KindCard,
				model.KindGoal, model.KindCard, model.KindCard,
			})
		})

		Convey("And sorting by minute differs from document order", func() {
			sorted := model.SortTimeline(res.Timeline)
			minutes := make([]minute.Value, 0, len(sorted))
			for _, e := range sorted {
				minutes = append(minutes, e.Minute)
			}
			So(minutes, ShouldResemble, []minute.Value{12, 33, 46, 58, 88, 93, 120})
			So(res.Timeline[5].Minute, ShouldEqual, minute.Value(88))
		})
	})
}

func TestScan_EdgeCases(t *testing.T) {
	s := scanner.New(scanner.WithSubstitutionOrder(scanner.OrderOutFirst))

	Convey("Text without events yields empty collections", t, func() {
		for _, text := range []string{"", "   ", "Informe arbitral sin incidencias", "Gol de (9) Ana Perez"} {
			res := s.Scan(text)
			So(res.Goals, ShouldNotBeNil)
			So(res.Goals, ShouldBeEmpty)
			So(res.Substitutions, ShouldBeEmpty)
			So(res.Timeline, ShouldBeEmpty)
		}
	})

	Convey("A malformed stoppage suffix keeps the event with an invalid minute", t, func() {
		res := s.Scan("Gol de (9) Ana Perez Min: 90+x")
		So(res.Goals, ShouldHaveLength, 1)
		So(res.Goals[0].Minute, ShouldEqual, minute.Invalid)
		So(res.Goals[0].MinuteText, ShouldEqual, "90+x")
		So(res.InvalidMinutes(), ShouldEqual, 1)
	})

	Convey("An event without a player name keeps its dorsal", t, func() {
		res := s.Scan("Gol de (1) Min: 3 Amarilla de (4)  Min: 20 (15) por (7) Min: 60")
		So(res.Goals, ShouldHaveLength, 1)
		So(res.Goals[0].Dorsal, ShouldEqual, "1")
		So(res.Goals[0].PlayerName, ShouldEqual, "")
		So(res.Goals[0].Minute, ShouldEqual, minute.Value(3))
		So(res.Cards, ShouldHaveLength, 1)
		So(res.Cards[0].Dorsal, ShouldEqual, "4")
		So(res.Substitutions, ShouldHaveLength, 1)
		So(res.Substitutions[0].Out, ShouldResemble, model.Player{Dorsal: "15"})
		So(res.Substitutions[0].In, ShouldResemble, model.Player{Dorsal: "7"})
		So(res.Timeline, ShouldHaveLength, 3)
	})

	Convey("Back-to-back events on one line are split at Min:", t, func() {
		res := s.Scan("Gol de (9) Ana Min: 10 Gol de (11) Luz Min: 12")
		So(res.Goals, ShouldHaveLength, 2)
		So(res.Goals[0].PlayerName, ShouldEqual, "Ana")
		So(res.Goals[1].PlayerName, ShouldEqual, "Luz")
	})

	Convey("A name span wrapped across lines is rejoined", t, func() {
		res := s.Scan("Gol de (9) Ana\n   Perez\nMin:\n10")
		So(res.Goals, ShouldHaveLength, 1)
		So(res.Goals[0].PlayerName, ShouldEqual, "Ana Perez")
		So(res.Goals[0].Minute, ShouldEqual, minute.Value(10))
	})

	Convey("A goal line is never read as a substitution", t, func() {
		res := s.Scan("Gol de (9) Ana Perez Min: 10")
		So(res.Goals, ShouldHaveLength, 1)
		So(res.Substitutions, ShouldBeEmpty)
	})
}

func TestScan_Idempotent(t *testing.T) {
	Convey("Scanning twice, or scanning normalized text, gives the same result", t, func() {
		s := scanner.New()
		text := "Amarilla de (4) Sofia\nRamirez Min: 12\n" + matchReport
		first := s.Scan(text)
		So(cmp.Diff(first, s.Scan(text)), ShouldBeEmpty)
		So(cmp.Diff(first, s.Scan(scanner.Normalize(text))), ShouldBeEmpty)
	})
}

func TestParseOrder(t *testing.T) {
	Convey("Order names parse", t, func() {
		o, ok := scanner.ParseOrder("in_first")
		So(ok, ShouldBeTrue)
		So(o, ShouldEqual, scanner.OrderInFirst)

		o, ok = scanner.ParseOrder("out_first")
		So(ok, ShouldBeTrue)
		So(o.String(), ShouldEqual, "out_first")

		_, ok = scanner.ParseOrder("")
		So(ok, ShouldBeFalse)
	})
}
