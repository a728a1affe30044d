package smoke

import (
	"errors"
	"fmt"
)

var (
	// ErrUnhealthy is returned when a target does not answer /healthz with 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrFailed is returned when at least one check did not hold.
	ErrFailed = errors.New("smoke checks failed")
)

func mismatch(check string, want, got any) string {
	return fmt.Sprintf("%s: want %v, got %v", check, want, got)
}
