// Package process hands placed orders to an external kitchen command.
//
// The order is written to the command's stdin as JSON. The session ID and the
// rendered order travel as environment variables so shell scripts can use
// them without parsing JSON. Order contents are never passed as arguments.
package process

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
)

// Environment variables set for the kitchen command.
const (
	EnvSessionID = "BARISTABOT_SESSION_ID"
	EnvOrder     = "BARISTABOT_ORDER"
	EnvLineCount = "BARISTABOT_ORDER_LINES"
)

// DefaultTimeout bounds a kitchen command without an explicit timeout.
const DefaultTimeout = 10 * time.Second

// Payload is the JSON document written to the command's stdin.
type Payload struct {
	SessionID string       `json:"session_id"`
	Order     domain.Order `json:"order"`
}

// Fulfillment implements ports.Fulfillment by running a local process.
type Fulfillment struct {
	cfg    KitchenConfig
	logger *slog.Logger
}

// Option configures the Fulfillment.
type Option func(*Fulfillment)

// WithLogger sets the logger used for command output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fulfillment) {
		f.logger = logger
	}
}

// New creates a Fulfillment running cfg.Command.
func New(cfg KitchenConfig, opts ...Option) *Fulfillment {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	f := &Fulfillment{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SubmitOrder runs the kitchen command. A non-zero exit fails the submission.
func (f *Fulfillment) SubmitOrder(ctx context.Context, sessionID string, order domain.Order) error {
	payload, err := json.Marshal(Payload{SessionID: sessionID, Order: order})
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.cfg.Command, f.cfg.Args...)
	cmd.Dir = f.cfg.Dir
	cmd.Stdin = bytes.NewReader(payload)

	env := cmd.Environ()
	for k, v := range f.cfg.Environment {
		env = append(env, k+"="+v)
	}
	env = append(env,
		EnvSessionID+"="+sessionID,
		EnvOrder+"="+order.String(),
		EnvLineCount+"="+strconv.Itoa(len(order)),
	)
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("kitchen command %s: %w", f.cfg.Command, ctx.Err())
		}
		return fmt.Errorf("kitchen command %s failed: %w: %s", f.cfg.Command, err, strings.TrimSpace(stderr.String()))
	}

	f.logger.Info("order sent to kitchen",
		"session_id", sessionID,
		"lines", len(order),
		"output", strings.TrimSpace(stdout.String()))
	return nil
}

var _ ports.Fulfillment = (*Fulfillment)(nil)
