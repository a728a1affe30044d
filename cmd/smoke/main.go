// Command smoke replays the reference scenarios against freshly started services.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/collections/internal/smoke"
	"github.com/okian/collections/pkg/logger"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = time.Minute
)

func main() {
	var (
		productsURL = flag.String("products", "http://localhost:3000", "Base URL of the products service (empty to skip)")
		postsURL    = flag.String("posts", "", "Base URL of the posts service (empty to skip)")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		format      = flag.String("log-format", logger.FormatText, "Log format: text or json")
		verbose     = flag.Bool("verbose", false, "Log every scenario")
	)
	flag.Parse()

	if err := logger.Init(logger.WithFormat(*format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	_, err := smoke.Run(ctx, &smoke.Config{
		ProductsURL: *productsURL,
		PostsURL:    *postsURL,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}, logger.Named("smoke"))
	if err != nil {
		os.Stderr.WriteString("smoke failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
