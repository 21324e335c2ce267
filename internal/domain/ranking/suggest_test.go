package ranking_test

import (
	"testing"

	"github.com/okian/moonsurvival/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluator_Suggest(t *testing.T) {
	Convey("Given the default evaluator", t, func() {
		e := ranking.Default()

		Convey("When the name is already a reference item", func() {
			name, ok := e.Suggest("星圖")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "星圖")
		})

		Convey("When the name is a prefix of an item", func() {
			name, ok := e.Suggest("氧氣")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "氧氣瓶")
		})

		Convey("When the name is one edit away from an item", func() {
			name, ok := e.Suggest("醫療包")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "醫療箱")
		})

		Convey("When the name is surrounded by spaces", func() {
			name, ok := e.Suggest("  火柴 ")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "火柴")
		})

		Convey("When the name is unrelated", func() {
			_, ok := e.Suggest("X")
			So(ok, ShouldBeFalse)
		})

		Convey("When the name is blank", func() {
			_, ok := e.Suggest("   ")
			So(ok, ShouldBeFalse)
		})
	})
}
