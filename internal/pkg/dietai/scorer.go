package dietai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/ManuelReschke/Dietly/internal/pkg/env"
)

var (
	// ErrScoringUnavailable means the scoring collaborator could not be
	// reached or did not answer within the timeout.
	ErrScoringUnavailable = errors.New("diet scoring unavailable")
	// ErrInvalidScoringOutput means the collaborator answered with something
	// that is not a usable recommendation.
	ErrInvalidScoringOutput = errors.New("invalid scoring output")
)

// Recommendation is the parsed scoring collaborator response.
type Recommendation struct {
	RecommendedPlanID uint     `json:"recommended_plan_id"`
	DietType          string   `json:"diet_type"`
	Confidence        *float64 `json:"confidence,omitempty"`
	Message           string   `json:"message"`
}

// Scorer maps quiz answers to a recommended diet plan.
type Scorer interface {
	Score(ctx context.Context, answers map[string]interface{}) (*Recommendation, error)
}

// ExecScorer invokes the scoring collaborator as a child process, passing
// the quiz answers as one JSON argument. The collaborator must print a
// single JSON recommendation on stdout; its stderr carries model debug
// output and is logged server-side only.
type ExecScorer struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// NewExecScorerFromEnv builds a scorer from DIETAI_CMD / DIETAI_ARGS /
// DIETAI_TIMEOUT_SECONDS. The model retrains per invocation, so the default
// bound is generous.
func NewExecScorerFromEnv() *ExecScorer {
	timeout := 30 * time.Second
	if raw := strings.TrimSpace(env.GetEnv("DIETAI_TIMEOUT_SECONDS", "")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	args := []string{"ai_model.py"}
	if raw := strings.TrimSpace(env.GetEnv("DIETAI_ARGS", "")); raw != "" {
		args = strings.Fields(raw)
	}

	return &ExecScorer{
		Command: env.GetEnv("DIETAI_CMD", "python"),
		Args:    args,
		Timeout: timeout,
	}
}

func (s *ExecScorer) Score(ctx context.Context, answers map[string]interface{}) (*Recommendation, error) {
	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot encode answers: %v", ErrInvalidScoringOutput, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	args := append(append([]string{}, s.Args...), string(payload))
	cmd := exec.CommandContext(ctx, s.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Printf("diet scoring stderr: %s", msg)
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: timed out after %s", ErrScoringUnavailable, s.Timeout)
	}
	if runErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringUnavailable, runErr)
	}

	return ParseRecommendation(stdout.Bytes())
}

// ParseRecommendation decodes the collaborator's stdout. A response without
// a plan id is unusable even when it is syntactically valid JSON.
func ParseRecommendation(raw []byte) (*Recommendation, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidScoringOutput)
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScoringOutput, err)
	}
	if rec.RecommendedPlanID == 0 {
		return nil, fmt.Errorf("%w: missing recommended_plan_id", ErrInvalidScoringOutput)
	}
	return &rec, nil
}
