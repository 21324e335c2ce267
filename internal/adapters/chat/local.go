package chat

import (
	"context"
	"strings"
	"time"
)

const (
	oxygenTip = "氧氣是最關鍵的資源；確保氧氣瓶放在前三名。"
	waterTip  = "水對倖存很重要，通常排在前二至前三名。"
	rankTip   = "你可以把物品拖放後按「評分」，系統會顯示與 NASA 官方排名的差距與分數。"
)

var genericTips = [...]string{ //nolint:gochecknoglobals // fixed reply table
	"試著把維持生命的物品（氧氣、水、食物）放在最前面。",
	"導航工具對長距離返回基地有幫助，但在短期生存時可能不如氧氣或水重要。",
	"如果你想要更詳細的解釋，輸入像「為什麼氧氣重要？」之類的問題。",
}

type rule struct {
	keywords []string
	reply    string
}

// Rules are checked in order; the first match wins.
var rules = []rule{ //nolint:gochecknoglobals // fixed rule table
	{keywords: []string{"oxygen", "氧氣"}, reply: oxygenTip},
	{keywords: []string{"water", "水"}, reply: waterTip},
	{keywords: []string{"rank", "排名"}, reply: rankTip},
}

// Local is a keyword-based responder that never fails.
type Local struct {
	now func() time.Time
}

// LocalOption configures a Local responder.
type LocalOption func(*Local)

// WithClock replaces the clock used to rotate generic tips.
func WithClock(now func() time.Time) LocalOption {
	return func(l *Local) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLocal creates a rule-based responder.
func NewLocal(opts ...LocalOption) *Local {
	l := &Local{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reply implements Responder.
func (l *Local) Reply(_ context.Context, message string) (Reply, error) {
	return Reply{Text: l.answer(message), Source: SourceLocal}, nil
}

func (l *Local) answer(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply
			}
		}
	}
	idx := l.now().Unix() % int64(len(genericTips))
	if idx < 0 {
		idx = -idx
	}
	return genericTips[idx]
}
