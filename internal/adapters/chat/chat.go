// Package chat answers free-text questions about the survival exercise.
//
// Three responders are provided: a rule-based Local responder, a Remote
// responder backed by a generative model, and a Fallback that tries the
// remote first and degrades to the local rules on failure.
package chat

import (
	"context"
	"errors"
	"time"
)

// Source identifies which responder produced a reply.
type Source string

const (
	SourceLocal    Source = "local"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Errors returned by responders.
var (
	ErrEmptyMessage = errors.New("chat: empty message")
	ErrEmptyReply   = errors.New("chat: remote returned an empty reply")
)

// Reply is a responder answer.
type Reply struct {
	Text   string `json:"reply"`
	Source Source `json:"source"`
}

// Responder produces a reply for a user message.
type Responder interface {
	Reply(ctx context.Context, message string) (Reply, error)
}

// Settings selects and configures the responder built by New.
type Settings struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// New returns Fallback(Remote, Local) when an API key is configured and
// Local otherwise. The boolean reports whether a remote responder is in use.
func New(ctx context.Context, s Settings) (Responder, bool, error) {
	local := NewLocal()
	if s.APIKey == "" {
		return local, false, nil
	}

	remote, err := NewRemote(ctx, s.APIKey, WithModel(s.Model), WithTimeout(s.Timeout))
	if err != nil {
		return nil, false, err
	}
	return NewFallback(remote, local), true, nil
}
