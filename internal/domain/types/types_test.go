package types_test

import (
	"testing"

	types "github.com/okian/cambios/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given a score", t, func() {
		s := types.Score{Focus: 2, Opponent: 1}

		Convey("When rendering it", func() {
			So(s.String(), ShouldEqual, "2-1")
			So(types.Score{}.String(), ShouldEqual, "0-0")
		})

		Convey("When flipping the perspective", func() {
			f := s.Flip()
			So(f.Focus, ShouldEqual, 1)
			So(f.Opponent, ShouldEqual, 2)
			So(f.Flip(), ShouldResemble, s)
		})
	})
}
