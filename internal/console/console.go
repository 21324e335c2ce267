package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
)

// ErrUnknownMode is returned by Menu for a choice other than 1 or 2.
var ErrUnknownMode = errors.New("unknown mode")

// Scorer is the part of the ranking service the console drives.
type Scorer interface {
	Items(ctx context.Context) []model.Item
	Evaluate(ctx context.Context, order []string) (ranking.Result, error)
	Team(ctx context.Context, submissions []ranking.Submission) (ranking.TeamResult, error)
}

// Console runs the single and team exercises on a terminal.
type Console struct {
	scorer Scorer
	in     io.Reader
	out    io.Writer
	prompt *Prompter
}

// New returns a console reading from in and writing to out.
func New(scorer Scorer, in io.Reader, out io.Writer) *Console {
	return &Console{
		scorer: scorer,
		in:     in,
		out:    out,
		prompt: NewPrompter(in, out),
	}
}

// Menu asks for the mode and runs it.
func (c *Console) Menu(ctx context.Context) error {
	fmt.Fprintln(c.out, titleStyle.Render("🌙 月球倖存實驗 🌙"))
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "選擇遊戲模式:")
	fmt.Fprintln(c.out, "1. 單人模式")
	fmt.Fprintln(c.out, "2. 團隊模式")
	fmt.Fprintln(c.out)

	choice, err := c.prompt.Line("請選擇 (1 或 2): ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return c.Single(ctx, false)
	case "2":
		return c.Team(ctx)
	default:
		fmt.Fprintln(c.out, "❌ 無效選擇")
		return fmt.Errorf("%w: %q", ErrUnknownMode, choice)
	}
}

// Single ranks the items for one player and prints the result. With
// interactive set the order is chosen in the picker instead of typed.
func (c *Console) Single(ctx context.Context, interactive bool) error {
	items := c.scorer.Items(ctx)

	var order []string
	if interactive {
		picked, err := RunPicker(ctx, items, c.in, c.out)
		if err != nil {
			return err
		}
		order = picked
	} else {
		RenderItems(c.out, items)
		indices, err := c.prompt.Indices("玩家", len(items))
		if err != nil {
			return err
		}
		order = namesAt(items, indices)
	}

	res, err := c.scorer.Evaluate(ctx, order)
	if err != nil {
		return fmt.Errorf("single: %w", err)
	}
	RenderSingle(c.out, res)
	return nil
}

// Team collects one ranking per participant and prints the comparison.
func (c *Console) Team(ctx context.Context) error {
	items := c.scorer.Items(ctx)
	RenderItems(c.out, items)

	count, err := c.prompt.Count("有多少人參與？ ")
	if err != nil {
		return err
	}

	taken := make(map[string]bool, count)
	subs := make([]ranking.Submission, 0, count)
	for i := 0; i < count; i++ {
		name, err := c.prompt.Name(fmt.Sprintf("第 %d 個人的名字: ", i+1), taken)
		if err != nil {
			return err
		}
		taken[name] = true
		indices, err := c.prompt.Indices(name, len(items))
		if err != nil {
			return err
		}
		subs = append(subs, ranking.Submission{Participant: name, Order: namesAt(items, indices)})
	}

	res, err := c.scorer.Team(ctx, subs)
	if err != nil {
		return fmt.Errorf("team: %w", err)
	}
	RenderTeam(c.out, res, items)
	return nil
}

// Score evaluates a list of names in one shot and prints the breakdown.
func (c *Console) Score(ctx context.Context, names []string) error {
	res, err := c.scorer.Evaluate(ctx, names)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	RenderDetail(c.out, res)
	return nil
}

func namesAt(items []model.Item, indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = items[idx].Name
	}
	return out
}
