package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
)

// evaluatorScorer drives the console straight from the reference evaluator.
type evaluatorScorer struct{ e *ranking.Evaluator }

func (s evaluatorScorer) Items(context.Context) []model.Item { return s.e.Items() }

func (s evaluatorScorer) Evaluate(_ context.Context, order []string) (ranking.Result, error) {
	return s.e.Evaluate(order)
}

func (s evaluatorScorer) Team(_ context.Context, subs []ranking.Submission) (ranking.TeamResult, error) {
	return s.e.Team(subs)
}

const (
	identity = "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15"
	reversed = "15,14,13,12,11,10,9,8,7,6,5,4,3,2,1"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(evaluatorScorer{e: ranking.Default()}, strings.NewReader(input), out), out
}

func TestParseIndices(t *testing.T) {
	Convey("Given ParseIndices", t, func() {
		Convey("When the input is a valid permutation", func() {
			got, err := ParseIndices(" 2, 1 ,3", 3)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []int{1, 0, 2})
		})

		Convey("When an entry is not a number", func() {
			_, err := ParseIndices("1,x,3", 3)
			So(errors.Is(err, ErrNotNumber), ShouldBeTrue)
		})

		Convey("When the count is wrong", func() {
			_, err := ParseIndices("1,2", 3)
			So(errors.Is(err, ErrWrongCount), ShouldBeTrue)
		})

		Convey("When an entry repeats", func() {
			_, err := ParseIndices("1,1,3", 3)
			So(errors.Is(err, ErrNotPermutation), ShouldBeTrue)
		})

		Convey("When an entry is out of range", func() {
			_, err := ParseIndices("0,1,2", 3)
			So(errors.Is(err, ErrNotPermutation), ShouldBeTrue)
			_, err = ParseIndices("1,2,4", 3)
			So(errors.Is(err, ErrNotPermutation), ShouldBeTrue)
		})

		Convey("When the input is empty", func() {
			_, err := ParseIndices("", 3)
			So(errors.Is(err, ErrNotNumber), ShouldBeTrue)
		})
	})
}

func TestValidateName(t *testing.T) {
	Convey("Given ValidateName", t, func() {
		taken := map[string]bool{"ann": true}

		So(ValidateName("bob", taken), ShouldBeNil)
		So(ValidateName("", taken), ShouldEqual, ErrBlankName)
		So(ValidateName("   ", taken), ShouldEqual, ErrBlankName)
		So(errors.Is(ValidateName("ann", taken), ErrDuplicateName), ShouldBeTrue)
		So(ValidateName("ann", nil), ShouldBeNil)
	})
}

func TestPrompter(t *testing.T) {
	Convey("Given a prompter", t, func() {
		out := &bytes.Buffer{}

		Convey("Indices re-asks until the input is valid", func() {
			p := NewPrompter(strings.NewReader("1,2\n1,1,2\na,b,c\n3,2,1\n"), out)
			got, err := p.Indices("玩家", 3)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, []int{2, 1, 0})
			So(out.String(), ShouldContainSubstring, "❌ 錯誤: 請輸入 3 個物品")
			So(out.String(), ShouldContainSubstring, "❌ 錯誤: 每個物品必須恰好出現一次")
			So(out.String(), ShouldContainSubstring, "❌ 輸入無效，請重試")
			So(out.String(), ShouldContainSubstring, "✅ 排序已保存")
		})

		Convey("Indices stops at end of input", func() {
			p := NewPrompter(strings.NewReader("1,2\n"), out)
			_, err := p.Indices("玩家", 3)
			So(err, ShouldEqual, io.EOF)
		})

		Convey("Count rejects non-positive numbers", func() {
			p := NewPrompter(strings.NewReader("zero\n0\n2\n"), out)
			n, err := p.Count("? ")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})

		Convey("Name rejects blank and taken names", func() {
			p := NewPrompter(strings.NewReader("\nann\nbob\n"), out)
			name, err := p.Name("? ", map[string]bool{"ann": true})
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "bob")
			So(out.String(), ShouldContainSubstring, "❌ 名字不可空白")
			So(out.String(), ShouldContainSubstring, "❌ 這個名字已經使用過")
		})
	})
}

func TestConsole(t *testing.T) {
	Convey("Given a console over the reference evaluator", t, func() {
		ctx := context.Background()

		Convey("Single scores a perfect ranking as zero", func() {
			c, out := newTestConsole(identity + "\n")
			So(c.Single(ctx, false), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "月球倖存實驗 - 物品列表")
			So(out.String(), ShouldContainSubstring, "準確度分數: 0")
			So(out.String(), ShouldContainSubstring, "分數越低越好 (最佳: 0)")
			So(out.String(), ShouldNotContainSubstring, "✗")
		})

		Convey("Single marks misplaced items", func() {
			c, out := newTestConsole("2,1,3,4,5,6,7,8,9,10,11,12,13,14,15\n")
			So(c.Single(ctx, false), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "✗")
			So(out.String(), ShouldContainSubstring, "準確度分數: 2")
		})

		Convey("Single returns EOF when input ends early", func() {
			c, _ := newTestConsole("")
			So(c.Single(ctx, false), ShouldEqual, io.EOF)
		})

		Convey("Team prints the consensus and every participant", func() {
			input := strings.Join([]string{"2", "ann", identity, "ann", "bob", reversed}, "\n") + "\n"
			c, out := newTestConsole(input)
			So(c.Team(ctx), ShouldBeNil)
			text := out.String()
			So(text, ShouldContainSubstring, "團隊總分: 0")
			So(text, ShouldContainSubstring, "最差可能分數: 112")
			So(text, ShouldContainSubstring, "112 分")
			So(text, ShouldContainSubstring, "bob")
		})

		Convey("Score prints suggestions for unknown names", func() {
			names := model.Names(ranking.Default().Items())
			names[1] = "水水"
			c, out := newTestConsole("")
			So(c.Score(ctx, names), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "未知物品")
		})

		Convey("Score rejects the wrong number of names", func() {
			c, _ := newTestConsole("")
			err := c.Score(ctx, []string{"水"})
			So(errors.Is(err, ranking.ErrInvalidLength), ShouldBeTrue)
		})

		Convey("Menu rejects an unknown choice", func() {
			c, out := newTestConsole("3\n")
			err := c.Menu(ctx)
			So(errors.Is(err, ErrUnknownMode), ShouldBeTrue)
			So(out.String(), ShouldContainSubstring, "❌ 無效選擇")
		})

		Convey("Menu runs single mode", func() {
			c, out := newTestConsole("1\n" + identity + "\n")
			So(c.Menu(ctx), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "準確度分數: 0")
		})
	})
}

func TestPicker(t *testing.T) {
	Convey("Given a picker over three items", t, func() {
		items := ranking.Default().Items()[:3]
		var m tea.Model = newPicker(items)

		press := func(k tea.KeyMsg) tea.Cmd {
			var cmd tea.Cmd
			m, cmd = m.Update(k)
			return cmd
		}

		Convey("Moving without grabbing keeps the order", func() {
			press(tea.KeyMsg{Type: tea.KeyDown})
			press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
			So(m.(picker).cursor, ShouldEqual, 2)
			So(m.(picker).Names(), ShouldResemble, model.Names(items))
		})

		Convey("Grabbing drags the item along", func() {
			press(tea.KeyMsg{Type: tea.KeySpace})
			press(tea.KeyMsg{Type: tea.KeyDown})
			press(tea.KeyMsg{Type: tea.KeyDown})
			So(m.(picker).Names(), ShouldResemble, []string{items[1].Name, items[2].Name, items[0].Name})
			So(m.View(), ShouldContainSubstring, "»")
		})

		Convey("The cursor stays inside the list", func() {
			press(tea.KeyMsg{Type: tea.KeyUp})
			So(m.(picker).cursor, ShouldEqual, 0)
		})

		Convey("Enter submits and quits", func() {
			cmd := press(tea.KeyMsg{Type: tea.KeyEnter})
			So(m.(picker).submitted, ShouldBeTrue)
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldHaveSameTypeAs, tea.QuitMsg{})
		})

		Convey("Escape cancels", func() {
			press(tea.KeyMsg{Type: tea.KeyEsc})
			So(m.(picker).cancelled, ShouldBeTrue)
			So(m.View(), ShouldEqual, "")
		})
	})

	Convey("Given RunPicker reading keys from a buffer", t, func() {
		items := ranking.Default().Items()
		out := &bytes.Buffer{}

		Convey("Enter returns the current order", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			names, err := RunPicker(ctx, items, strings.NewReader("\r"), out)
			So(err, ShouldBeNil)
			So(names, ShouldResemble, model.Names(items))
		})
	})
}
