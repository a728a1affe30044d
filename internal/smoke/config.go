// Package smoke replays the reference scenarios against running collection services.
package smoke

import (
	"encoding/json"
	"time"
)

// Config holds the targets of a smoke run. An empty URL skips that service.
type Config struct {
	ProductsURL string
	PostsURL    string
	Timeout     time.Duration
	Verbose     bool
}

// Product mirrors the products wire format.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Post mirrors the posts wire format.
type Post struct {
	ID    int             `json:"id"`
	Title json.RawMessage `json:"title,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Report summarizes a run.
type Report struct {
	RunID    string
	Checks   int
	Failures []string
	Duration time.Duration
}

// Passed reports whether every check succeeded.
func (r *Report) Passed() bool { return len(r.Failures) == 0 }
