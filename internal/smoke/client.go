package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// requestIDHeader matches the header the services echo back.
const requestIDHeader = "X-Request-ID"

type client struct {
	http  *http.Client
	runID string
	seq   int
}

func newClient(timeout time.Duration, runID string) *client {
	return &client{http: &http.Client{Timeout: timeout}, runID: runID}
}

// do sends one request and returns the status and the full body. A nil body sends no payload.
func (c *client) do(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.seq++
	req.Header.Set(requestIDHeader, fmt.Sprintf("%s-%d", c.runID, c.seq))

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}
