package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel    = "gemini-2.0-flash"
	defaultTimeout  = 15 * time.Second
	temperature     = 0.7
	maxOutputTokens = 400
	systemPrompt    = "你是友善的助理，專門提供關於月球倖存任務的實用建議。"
)

// generator is the subset of the GenAI models service used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Remote asks a hosted generative model for a reply.
type Remote struct {
	gen     generator
	model   string
	timeout time.Duration
}

// RemoteOption configures a Remote responder.
type RemoteOption func(*Remote)

// WithModel sets the model name.
func WithModel(model string) RemoteOption {
	return func(r *Remote) {
		if model != "" {
			r.model = model
		}
	}
}

// WithTimeout bounds each remote call.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRemote creates a responder backed by the Gemini API.
func NewRemote(ctx context.Context, apiKey string, opts ...RemoteOption) (*Remote, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newRemote(client.Models, opts...), nil
}

func newRemote(gen generator, opts ...RemoteOption) *Remote {
	r := &Remote{gen: gen, model: defaultModel, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reply implements Responder.
func (r *Remote) Reply(ctx context.Context, message string) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.gen.GenerateContent(ctx, r.model,
		[]*genai.Content{genai.NewContentFromText(message, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](temperature),
			MaxOutputTokens:   maxOutputTokens,
		},
	)
	if err != nil {
		return Reply{}, fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return Reply{}, ErrEmptyReply
	}
	return Reply{Text: text, Source: SourceRemote}, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
