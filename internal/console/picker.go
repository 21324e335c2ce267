package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/moonsurvival/internal/domain/model"
)

// ErrCancelled is returned when the picker is closed without submitting.
var ErrCancelled = errors.New("ordering cancelled")

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	grabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// picker lets the player reorder items with the keyboard. Space grabs the
// item under the cursor; moving while grabbed drags it along.
type picker struct {
	order     []model.Item
	cursor    int
	grabbed   bool
	submitted bool
	cancelled bool
}

func newPicker(items []model.Item) picker {
	order := make([]model.Item, len(items))
	copy(order, items)
	return picker{order: order}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "up", "k":
		p.move(-1)
	case "down", "j":
		p.move(1)
	case " ":
		p.grabbed = !p.grabbed
	case "enter":
		p.submitted = true
		return p, tea.Quit
	case "esc", "q", "ctrl+c":
		p.cancelled = true
		return p, tea.Quit
	}
	return p, nil
}

func (p *picker) move(delta int) {
	next := p.cursor + delta
	if next < 0 || next >= len(p.order) {
		return
	}
	if p.grabbed {
		p.order[p.cursor], p.order[next] = p.order[next], p.order[p.cursor]
	}
	p.cursor = next
}

func (p picker) View() string {
	if p.submitted || p.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("排列物品（最重要在最上面）"))
	b.WriteString("\n\n")
	for i, it := range p.order {
		line := fmt.Sprintf("%2d. %s", i+1, padRight(it.Name, nameWidth))
		switch {
		case i == p.cursor && p.grabbed:
			line = grabStyle.Render("» " + line)
		case i == p.cursor:
			line = cursorStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/k ↓/j 移動 • 空白鍵 抓取/放下 • enter 送出 • esc 取消"))
	b.WriteString("\n")
	return b.String()
}

// Names returns the current order.
func (p picker) Names() []string {
	return model.Names(p.order)
}

// RunPicker runs the interactive picker until the player submits or cancels
// and returns the chosen order of item names.
func RunPicker(ctx context.Context, items []model.Item, in io.Reader, out io.Writer) ([]string, error) {
	prog := tea.NewProgram(newPicker(items),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	p, ok := final.(picker)
	if !ok || p.cancelled || !p.submitted {
		return nil, ErrCancelled
	}
	return p.Names(), nil
}
