package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/okian/moonsurvival/internal/adapters/http/api"
)

// HTTPClient wraps http.Client with a timeout and trace propagation.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
	}
}

// reply is a decoded response.
type reply struct {
	status   int
	body     []byte
	replayed bool
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (reply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return reply{}, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// Post performs a POST request with a JSON body. A non-empty key is sent as
// the Idempotency-Key header.
func (c *HTTPClient) Post(ctx context.Context, path, key string, body any) (reply, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return reply{}, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return reply{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(api.IdempotencyKeyHeader, key)
	}
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (reply, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return reply{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return reply{}, fmt.Errorf("read response body: %w", err)
	}
	return reply{
		status:   resp.StatusCode,
		body:     body,
		replayed: resp.Header.Get(api.ReplayedHeader) == "true",
	}, nil
}

// decode unmarshals a 200 reply into v.
func (r reply) decode(v any) error {
	if r.status != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrBadResponse, r.status, bytes.TrimSpace(r.body))
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}
