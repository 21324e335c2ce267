package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
)

const (
	ruleWidth = 80
	nameWidth = 20
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	hitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	scoreStyle = lipgloss.NewStyle().Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// padRight pads s with spaces to width terminal cells. Wide CJK runes count
// as two cells.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func banner(w io.Writer, title string, width int) {
	rule := strings.Repeat("=", width)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, rule)
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headStyle.Render("【"+title+"】"))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("-", ruleWidth)))
}

// RenderItems prints the scenario and the numbered item list.
func RenderItems(w io.Writer, items []model.Item) {
	banner(w, "月球倖存實驗 - 物品列表", 60)
	fmt.Fprintln(w, "\n你被困在月球上，距離基地 200 英里。")
	fmt.Fprintln(w, "你的太空船損壞了。")
	fmt.Fprintf(w, "請根據倖存重要性排序以下 %d 項物品（最重要到最不重要）:\n\n", len(items))
	for i, it := range items {
		fmt.Fprintf(w, "%2d. %s - %s\n", i+1, padRight(it.Name, nameWidth), it.Description)
	}
	fmt.Fprintln(w)
}

// RenderSingle prints one player's ranking with hit marks and the score.
func RenderSingle(w io.Writer, res ranking.Result) {
	fmt.Fprintln(w)
	banner(w, "結果", ruleWidth)
	section(w, "你的排名")
	for _, row := range res.PerItem {
		mark := hitStyle.Render("✓")
		if row.Difference == nil || *row.Difference != 0 {
			mark = missStyle.Render("✗")
		}
		fmt.Fprintf(w, "%s %2d. %s (官方排名: %s)\n",
			mark, row.SubmittedPosition, padRight(row.Name, nameWidth), rankText(row.ReferenceRank))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, scoreStyle.Render(fmt.Sprintf("準確度分數: %d", res.Score)))
	fmt.Fprintln(w, dimStyle.Render("分數越低越好 (最佳: 0)"))
}

// RenderTeam prints the team consensus, the reference order and every score.
func RenderTeam(w io.Writer, res ranking.TeamResult, official []model.Item) {
	fmt.Fprintln(w)
	banner(w, "結果比較", ruleWidth)

	section(w, "團隊排名（平均）")
	for i, e := range res.TeamRanking {
		fmt.Fprintf(w, "%2d. %s %s\n", i+1, padRight(e.Name, nameWidth),
			dimStyle.Render(fmt.Sprintf("平均 %.2f", e.MeanPosition)))
	}

	section(w, "NASA 官方排名")
	for _, it := range official {
		fmt.Fprintf(w, "%2d. %s\n", it.Rank, it.Name)
	}

	fmt.Fprintln(w)
	banner(w, "準確度分析", ruleWidth)
	fmt.Fprintln(w)
	fmt.Fprintln(w, scoreStyle.Render(fmt.Sprintf("團隊總分: %d", res.TeamScore)))
	fmt.Fprintf(w, "最佳可能分數: %d\n", res.BestPossible)
	fmt.Fprintf(w, "最差可能分數: %d\n", res.WorstPossible)

	section(w, "個人準確度")
	for _, ind := range res.Individuals {
		fmt.Fprintf(w, "%s: %4d 分\n", padRight(ind.Participant, nameWidth), ind.Score)
	}
}

// RenderDetail prints a per-position breakdown, including unknown names and
// their closest reference item.
func RenderDetail(w io.Writer, res ranking.Result) {
	for _, row := range res.PerItem {
		if row.ReferenceRank == nil {
			line := fmt.Sprintf("%2d. %s 未知物品", row.SubmittedPosition, padRight(row.Name, nameWidth))
			if row.Suggestion != "" {
				line += fmt.Sprintf("（你是指「%s」嗎？）", row.Suggestion)
			}
			fmt.Fprintln(w, missStyle.Render(line))
			continue
		}
		fmt.Fprintf(w, "%2d. %s 官方排名 %2d 差距 %2d\n",
			row.SubmittedPosition, padRight(row.Name, nameWidth), *row.ReferenceRank, *row.Difference)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, scoreStyle.Render(fmt.Sprintf("準確度分數: %d", res.Score)))
}

func rankText(rank *int) string {
	if rank == nil {
		return " -"
	}
	return fmt.Sprintf("%2d", *rank)
}
