package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/cambios/internal/adapters/repository"
	"github.com/okian/cambios/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCacheStore(t *testing.T) {
	Convey("Given an empty cache store", t, func() {
		ctx := context.Background()
		s := repository.NewCacheStore()

		Convey("Unknown ids are not found", func() {
			_, err := s.Get(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 0)
		})

		Convey("An analysis without id is rejected", func() {
			So(errors.Is(s.Save(ctx, model.Analysis{}), repository.ErrInvalidID), ShouldBeTrue)
		})

		Convey("Saved sessions can be read back and replaced", func() {
			So(s.Save(ctx, model.Analysis{ID: "a1", Source: "report.pdf"}), ShouldBeNil)
			got, err := s.Get(ctx, "a1")
			So(err, ShouldBeNil)
			So(got.Source, ShouldEqual, "report.pdf")

			So(s.Save(ctx, model.Analysis{ID: "a1", Source: "other.pdf"}), ShouldBeNil)
			got, err = s.Get(ctx, "a1")
			So(err, ShouldBeNil)
			So(got.Source, ShouldEqual, "other.pdf")
			So(s.Count(ctx), ShouldEqual, 1)
		})

		Convey("Deleted sessions are gone", func() {
			So(s.Save(ctx, model.Analysis{ID: "a1"}), ShouldBeNil)
			So(s.Delete(ctx, "a1"), ShouldBeNil)
			So(s.Delete(ctx, "a1"), ShouldBeNil)
			_, err := s.Get(ctx, "a1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a store with a short TTL", t, func() {
		ctx := context.Background()
		s := repository.NewCacheStore(
			repository.WithTTL(20*time.Millisecond),
			repository.WithCleanupInterval(5*time.Millisecond),
		)
		So(s.Save(ctx, model.Analysis{ID: "a1"}), ShouldBeNil)

		Convey("Sessions expire", func() {
			time.Sleep(60 * time.Millisecond)
			_, err := s.Get(ctx, "a1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 0)
		})
	})
}
