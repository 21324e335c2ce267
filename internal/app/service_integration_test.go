package service_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	service "github.com/okian/moonsurvival/internal/app"
	"github.com/okian/moonsurvival/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_Concurrent(t *testing.T) {
	Convey("Given a shared service", t, func() {
		ctx := context.Background()
		svc := service.New()
		eval := ranking.Default()

		Convey("When many goroutines evaluate and aggregate at once", func() {
			const workers = 16
			var wg sync.WaitGroup
			errs := make(chan error, workers*2)
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(seed int64) {
					defer wg.Done()
					rng := rand.New(rand.NewSource(seed))
					order := referenceOrder()
					rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

					res, err := svc.Evaluate(ctx, order)
					if err != nil {
						errs <- err
						return
					}
					want, _ := eval.Score(order)
					if res.Score != want {
						errs <- fmt.Errorf("score %d, want %d", res.Score, want)
					}

					if _, err := svc.Team(ctx, []ranking.Submission{
						{Participant: "a", Order: order},
						{Participant: "b", Order: referenceOrder()},
					}); err != nil {
						errs <- err
					}
				}(int64(w))
			}
			wg.Wait()
			close(errs)

			Convey("Then every call should succeed consistently", func() {
				for err := range errs {
					So(err, ShouldBeNil)
				}
				stats := svc.GetStats()
				So(stats["evaluations"], ShouldEqual, int64(workers))
				So(stats["teamEvaluations"], ShouldEqual, int64(workers))
			})
		})
	})
}
