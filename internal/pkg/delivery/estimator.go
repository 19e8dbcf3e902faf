package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ManuelReschke/Dietly/internal/pkg/env"
)

// ErrEstimateFailed means the ETA collaborator could not produce a usable
// estimate: unreachable, timed out, non-zero exit or non-numeric output.
var ErrEstimateFailed = errors.New("delivery estimate failed")

// Estimator computes a delivery ETA in minutes for a given distance.
type Estimator interface {
	EstimateETA(ctx context.Context, distanceKm float64) (int, error)
}

// ExecEstimator invokes the ETA collaborator as a child process with the
// distance as its single argument. The collaborator prints one integer.
type ExecEstimator struct {
	Command string
	Timeout time.Duration
}

// NewExecEstimatorFromEnv builds an estimator from DELIVERY_CMD /
// DELIVERY_TIMEOUT_SECONDS.
func NewExecEstimatorFromEnv() *ExecEstimator {
	timeout := 5 * time.Second
	if raw := strings.TrimSpace(env.GetEnv("DELIVERY_TIMEOUT_SECONDS", "")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return &ExecEstimator{
		Command: env.GetEnv("DELIVERY_CMD", "./DeliveryETA"),
		Timeout: timeout,
	}
}

func (e *ExecEstimator) EstimateETA(ctx context.Context, distanceKm float64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	arg := strconv.FormatFloat(distanceKm, 'f', -1, 64)
	cmd := exec.CommandContext(ctx, e.Command, arg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Printf("delivery collaborator stderr: %s", msg)
	}

	if ctx.Err() == context.DeadlineExceeded {
		return 0, fmt.Errorf("%w: timed out after %s", ErrEstimateFailed, e.Timeout)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEstimateFailed, err)
	}

	return ParseETA(stdout.Bytes())
}

// ParseETA reads the collaborator's single-integer stdout.
func ParseETA(raw []byte) (int, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty response", ErrEstimateFailed)
	}
	eta, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric response %q", ErrEstimateFailed, trimmed)
	}
	return eta, nil
}
