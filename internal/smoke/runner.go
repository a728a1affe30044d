package smoke

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/collections/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Run checks health of each configured service, then replays its scenario.
// It returns ErrFailed (with the report) when any check fails.
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Report, error) {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	report := &Report{RunID: uuid.NewString()}
	start := time.Now()
	ctx = logger.WithRequestID(ctx, report.RunID)
	cl := newClient(timeout, report.RunID)
	chk := &checker{report: report}

	log.Info(ctx, "starting smoke run",
		logger.String("products_url", cfg.ProductsURL),
		logger.String("posts_url", cfg.PostsURL),
		logger.String("timeout", timeout.String()))

	targets := []struct {
		name     string
		url      string
		scenario func(context.Context, *client, *checker, string)
	}{
		{name: "products", url: cfg.ProductsURL, scenario: productsScenario},
		{name: "posts", url: cfg.PostsURL, scenario: postsScenario},
	}
	for _, t := range targets {
		if t.url == "" {
			log.Debug(ctx, "target skipped", logger.String("target", t.name))
			continue
		}
		base := strings.TrimRight(t.url, "/")
		if err := checkHealth(ctx, cl, base); err != nil {
			return report, fmt.Errorf("%s: %w", t.name, err)
		}
		before := len(report.Failures)
		t.scenario(ctx, cl, chk, base)
		if cfg.Verbose || len(report.Failures) > before {
			log.Info(ctx, "scenario finished",
				logger.String("target", t.name),
				logger.Int("failures", len(report.Failures)-before))
		}
	}

	report.Duration = time.Since(start)
	for _, f := range report.Failures {
		log.Warn(ctx, "check failed", logger.String("detail", f))
	}
	log.Info(ctx, "smoke run finished",
		logger.Int("checks", report.Checks),
		logger.Int("failures", len(report.Failures)),
		logger.String("duration", report.Duration.String()))
	if !report.Passed() {
		return report, ErrFailed
	}
	return report, nil
}

func checkHealth(ctx context.Context, cl *client, base string) error {
	status, _, err := cl.do(ctx, http.MethodGet, base+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}
