package chat

import (
	"context"
	"fmt"
)

const maxErrorRunes = 120

// Fallback tries a primary responder and answers from a secondary one,
// prefixed with the primary failure, when the primary errors.
type Fallback struct {
	primary   Responder
	secondary Responder
}

// NewFallback wraps primary with secondary.
func NewFallback(primary, secondary Responder) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

// Reply implements Responder.
func (f *Fallback) Reply(ctx context.Context, message string) (Reply, error) {
	reply, err := f.primary.Reply(ctx, message)
	if err == nil {
		return reply, nil
	}

	local, lerr := f.secondary.Reply(ctx, message)
	if lerr != nil {
		return Reply{}, fmt.Errorf("fallback after %w: %w", err, lerr)
	}
	return Reply{
		Text:   fmt.Sprintf("（遠端呼叫失敗：%s）\n%s", truncateRunes(err.Error(), maxErrorRunes), local.Text),
		Source: SourceFallback,
	}, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
