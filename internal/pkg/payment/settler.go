package payment

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

// ErrPaymentFailed covers every way a settlement attempt can go wrong on the
// transport side: the collaborator is unreachable, times out, exits non-zero
// or prints something that is not a valid receipt. Callers must not retry
// automatically; resubmitting a charge risks double billing.
var ErrPaymentFailed = errors.New("payment failed")

// Receipt is the parsed settlement collaborator response.
type Receipt struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
}

// Succeeded reports whether the collaborator confirmed the charge.
func (r *Receipt) Succeeded() bool {
	return r.Status == "success"
}

// Settler settles a charge with the external payment collaborator.
type Settler interface {
	Settle(ctx context.Context, paymentID uint32, amount float64) (*Receipt, error)
}

// ExecSettler invokes the settlement collaborator as a child process. The
// process is handed the payment id and the charge amount (twice, as amount
// paid and total amount) and must print a single JSON receipt on stdout
// within the timeout.
type ExecSettler struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// NewExecSettlerFromEnv builds a settler from PAYMENT_CMD / PAYMENT_ARGS /
// PAYMENT_TIMEOUT_SECONDS with the defaults the deployment ships with.
func NewExecSettlerFromEnv() *ExecSettler {
	timeout := 8 * time.Second
	if raw := strings.TrimSpace(env.GetEnv("PAYMENT_TIMEOUT_SECONDS", "")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	args := []string{"-cp", ".", "PaymentService"}
	if raw := strings.TrimSpace(env.GetEnv("PAYMENT_ARGS", "")); raw != "" {
		args = strings.Fields(raw)
	}

	return &ExecSettler{
		Command: env.GetEnv("PAYMENT_CMD", "java"),
		Args:    args,
		Timeout: timeout,
	}
}

// Settle runs the collaborator once and parses its receipt. Timeout kills
// the child process; whatever it printed by then is discarded.
func (s *ExecSettler) Settle(ctx context.Context, paymentID uint32, amount float64) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	amountStr := strconv.FormatFloat(amount, 'f', -1, 64)
	args := append(append([]string{}, s.Args...),
		strconv.FormatUint(uint64(paymentID), 10), amountStr, amountStr)

	cmd := exec.CommandContext(ctx, s.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	// Diagnostics go to the server log only and never into the parsed result.
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Printf("payment collaborator stderr: %s", msg)
	}

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: settlement timed out after %s", ErrPaymentFailed, s.Timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	receipt, perr := ParseReceipt(stdout.Bytes())
	if perr != nil {
		return nil, perr
	}
	return receipt, nil
}

// ParseReceipt decodes the collaborator's stdout into a receipt. Any output
// that is not a single JSON object with a status is treated as a failure.
func ParseReceipt(raw []byte) (*Receipt, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty settlement response", ErrPaymentFailed)
	}

	var receipt Receipt
	if err := json.Unmarshal([]byte(trimmed), &receipt); err != nil {
		return nil, fmt.Errorf("%w: invalid settlement response: %v", ErrPaymentFailed, err)
	}
	if receipt.Status == "" {
		return nil, fmt.Errorf("%w: settlement response has no status", ErrPaymentFailed)
	}
	return &receipt, nil
}
