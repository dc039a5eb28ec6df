package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ErrInterrupted marks a command stopped by SIGINT or SIGTERM.
var ErrInterrupted = errors.New("interrupted")

// InterruptedError carries the signal that stopped a command.
type InterruptedError struct {
	Signal os.Signal
}

func (e *InterruptedError) Error() string {
	return "interrupted by " + e.Signal.String()
}

func (e *InterruptedError) Unwrap() error {
	return ErrInterrupted
}

// ExitCode follows the shell convention of 128 plus the signal number.
func (e *InterruptedError) ExitCode() int {
	if s, ok := e.Signal.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

// SignalContext is cancelled on SIGINT or SIGTERM and remembers which one arrived.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext starts listening for SIGINT and SIGTERM until the context ends.
func NewSignalContext(parent context.Context) *SignalContext {
	return newSignalContext(parent, make(chan os.Signal, 1))
}

func newSignalContext(parent context.Context, signals chan os.Signal) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// Interrupted returns an *InterruptedError once a signal arrived, nil otherwise.
func (sc *SignalContext) Interrupted() error {
	if sig := sc.Signal(); sig != nil {
		return &InterruptedError{Signal: sig}
	}
	return nil
}
