package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/moonsurvival/internal/adapters/http/api"
	app "github.com/okian/moonsurvival/internal/app"
	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithOutput(&bytes.Buffer{})); err != nil {
		panic(err)
	}
}

func execute(input string, args ...string) (string, error) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const perfect = "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15"

func TestSingleCommand(t *testing.T) {
	Convey("Given the single command", t, func() {
		Convey("When a perfect ranking is entered", func() {
			out, err := execute(perfect+"\n", "single")

			Convey("Then it scores zero", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "準確度分數: 0")
			})
		})

		Convey("When input ends before a valid ranking", func() {
			_, err := execute("1,2,3\n", "single")

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestTeamCommand(t *testing.T) {
	Convey("Given the team command with two participants", t, func() {
		input := strings.Join([]string{"2", "ann", perfect, "bob", perfect}, "\n") + "\n"
		out, err := execute(input, "team")

		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "團隊總分: 0")
		So(out, ShouldContainSubstring, "ann")
		So(out, ShouldContainSubstring, "bob")
	})
}

func TestScoreCommand(t *testing.T) {
	Convey("Given the score command", t, func() {
		names := model.Names(model.DefaultItems())

		Convey("When names are passed as arguments", func() {
			out, err := execute("", append([]string{"score"}, names...)...)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "準確度分數: 0")
		})

		Convey("When names are passed with --order", func() {
			names[0], names[1] = names[1], names[0]
			out, err := execute("", "score", "--order", strings.Join(names, ","))
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "準確度分數: 2")
		})

		Convey("When no names are given", func() {
			_, err := execute("", "score")
			So(err, ShouldEqual, errNoOrder)
		})
	})
}

func TestMenu(t *testing.T) {
	Convey("Given the root command", t, func() {
		Convey("When mode 1 is chosen", func() {
			out, err := execute("1\n" + perfect + "\n")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "單人模式")
			So(out, ShouldContainSubstring, "準確度分數: 0")
		})

		Convey("When an unknown mode is chosen", func() {
			_, err := execute("9\n")
			So(err, ShouldNotBeNil)
		})

		Convey("When the log level is invalid", func() {
			_, err := execute("", "--log-level", "loud", "score", "水")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSimulateCommand(t *testing.T) {
	Convey("Given a running server", t, func() {
		svc := app.New()
		mux := http.NewServeMux()
		api.NewServer(svc, svc, svc, nil).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When simulate runs against it", func() {
			out, err := execute("", "simulate", "--url", srv.URL, "--participants", "3", "--seed", "9")

			Convey("Then every check passes", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "evaluations verified: 3/3")
				So(out, ShouldContainSubstring, "replay verified: true")
			})
		})
	})
}
