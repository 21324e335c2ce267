package ranking_test

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluator_Aggregate(t *testing.T) {
	Convey("Given the default evaluator", t, func() {
		e := ranking.Default()

		Convey("When the mapping is empty", func() {
			_, err := e.Aggregate(map[string][]string{})

			Convey("Then it should fail with ErrEmptyInput", func() {
				So(errors.Is(err, ranking.ErrEmptyInput), ShouldBeTrue)
			})
		})

		Convey("When a single submission is aggregated", func() {
			rng := rand.New(rand.NewSource(5))

			Convey("Then the team ranking should equal that submission", func() {
				for n := 0; n < 50; n++ {
					order := slices.Clone(referenceOrder)
					rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
					team, err := e.Aggregate(map[string][]string{"solo": order})
					So(err, ShouldBeNil)
					So(model.Names(team), ShouldResemble, order)
				}
			})
		})

		Convey("When two opposite submissions are aggregated", func() {
			team, err := e.Aggregate(map[string][]string{
				"a": referenceOrder,
				"b": reversed(referenceOrder),
			})

			Convey("Then every mean ties and reference order should win", func() {
				So(err, ShouldBeNil)
				So(model.Names(team), ShouldResemble, referenceOrder)
			})
		})

		Convey("When three submissions disagree on the top two", func() {
			swapped := slices.Clone(referenceOrder)
			swapped[0], swapped[1] = swapped[1], swapped[0]
			team, err := e.Aggregate(map[string][]string{
				"a": swapped,
				"b": swapped,
				"c": referenceOrder,
			})

			Convey("Then the majority order should lead", func() {
				So(err, ShouldBeNil)
				So(team[0].Name, ShouldEqual, "水")
				So(team[1].Name, ShouldEqual, "氧氣瓶")
				So(model.Names(team[2:]), ShouldResemble, referenceOrder[2:])
			})
		})

		Convey("When a submission omits an item", func() {
			// The omitted item counts as position 0, which moves it forward.
			partial := slices.Clone(reversed(referenceOrder))
			partial[0] = "X" // drops 磁羅盤, which the reversed order put first anyway
			other := reversed(referenceOrder)
			other[0], other[14] = other[14], other[0] // 氧氣瓶 first, 磁羅盤 last

			team, err := e.Aggregate(map[string][]string{
				"partial": partial,
				"other":   other,
			})

			Convey("Then the absent item should be treated as ranked first", func() {
				So(err, ShouldBeNil)
				// 磁羅盤: (0 + 15) / 2 = 7.5; 氧氣瓶: (15 + 1) / 2 = 8.
				idxCompass := slices.IndexFunc(team, func(it model.Item) bool { return it.Name == "磁羅盤" })
				idxOxygen := slices.IndexFunc(team, func(it model.Item) bool { return it.Name == "氧氣瓶" })
				So(idxCompass, ShouldBeLessThan, idxOxygen)
			})
		})

		Convey("When a submission contains none of the items", func() {
			empty := make([]string, 15)
			team, err := e.Aggregate(map[string][]string{"blank": empty})

			Convey("Then all means are 0 and reference order is kept", func() {
				So(err, ShouldBeNil)
				So(model.Names(team), ShouldResemble, referenceOrder)
			})
		})

		Convey("When a name appears twice in a submission", func() {
			dup := slices.Clone(referenceOrder)
			dup[14] = "水"
			team, err := e.Aggregate(map[string][]string{"dup": dup})

			Convey("Then only the first occurrence counts", func() {
				So(err, ShouldBeNil)
				So(team[0].Name, ShouldEqual, "磁羅盤") // absent -> 0
				So(team[1].Name, ShouldEqual, "氧氣瓶")
				So(team[2].Name, ShouldEqual, "水")
			})
		})
	})
}

func TestEvaluator_Team(t *testing.T) {
	Convey("Given the default evaluator", t, func() {
		e := ranking.Default()

		Convey("When no submissions are given", func() {
			_, err := e.Team(nil)
			So(errors.Is(err, ranking.ErrEmptyInput), ShouldBeTrue)
		})

		Convey("When a participant appears twice", func() {
			_, err := e.Team([]ranking.Submission{
				{Participant: "amy", Order: referenceOrder},
				{Participant: "amy", Order: referenceOrder},
			})
			So(errors.Is(err, ranking.ErrDuplicateParticipant), ShouldBeTrue)
		})

		Convey("When a submission is not a permutation", func() {
			bad := slices.Clone(referenceOrder)
			bad[2] = "X"
			_, err := e.Team([]ranking.Submission{
				{Participant: "amy", Order: referenceOrder},
				{Participant: "bob", Order: bad},
			})
			So(errors.Is(err, ranking.ErrNotPermutation), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "bob")
		})

		Convey("When a submission has the wrong length", func() {
			_, err := e.Team([]ranking.Submission{{Participant: "amy", Order: referenceOrder[:10]}})
			So(errors.Is(err, ranking.ErrInvalidLength), ShouldBeTrue)
		})

		Convey("When three participants submit", func() {
			swapped := slices.Clone(referenceOrder)
			swapped[0], swapped[1] = swapped[1], swapped[0]
			res, err := e.Team([]ranking.Submission{
				{Participant: "zoe", Order: swapped},
				{Participant: "amy", Order: reversed(referenceOrder)},
				{Participant: "bob", Order: referenceOrder},
			})

			Convey("Then individuals should be scored in input order", func() {
				So(err, ShouldBeNil)
				So(res.Individuals, ShouldResemble, []ranking.IndividualScore{
					{Participant: "zoe", Score: 2},
					{Participant: "amy", Score: 112},
					{Participant: "bob", Score: 0},
				})
			})

			Convey("Then the team score should match Accuracy of the consensus", func() {
				items := make([]model.Item, len(res.TeamRanking))
				for i, entry := range res.TeamRanking {
					items[i] = entry.Item
				}
				So(res.TeamScore, ShouldEqual, e.Accuracy(items))
				So(len(res.TeamPerItem), ShouldEqual, 15)
				So(res.TeamPerItem[0].Name, ShouldEqual, items[0].Name)
			})

			Convey("Then mean positions should be non-decreasing", func() {
				for i := 1; i < len(res.TeamRanking); i++ {
					So(res.TeamRanking[i].MeanPosition, ShouldBeGreaterThanOrEqualTo, res.TeamRanking[i-1].MeanPosition)
				}
			})

			Convey("Then the bounds should be reported", func() {
				So(res.BestPossible, ShouldEqual, 0)
				So(res.WorstPossible, ShouldEqual, 112)
			})
		})

		Convey("When a single participant submits", func() {
			order := reversed(referenceOrder)
			res, err := e.Team([]ranking.Submission{{Participant: "solo", Order: order}})

			Convey("Then team and individual scores should agree", func() {
				So(err, ShouldBeNil)
				So(res.TeamScore, ShouldEqual, 112)
				So(res.Individuals[0].Score, ShouldEqual, 112)
				So(res.TeamRanking[0].Name, ShouldEqual, "磁羅盤")
				So(res.TeamRanking[0].MeanPosition, ShouldEqual, 1.0)
			})
		})
	})
}
