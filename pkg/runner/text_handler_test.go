package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestTextHandler_Output(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)
	handler.Renderer = func(s string) (string, error) {
		return "Rendered: " + s, nil
	}

	if err := handler.Output(context.Background(), "One latte, coming up"); err != nil {
		t.Fatalf("Output failed: %v", err)
	}

	expected := "Rendered: One latte, coming up"
	if !strings.Contains(outBuf.String(), expected) {
		t.Errorf("Expected output to contain '%s', got '%s'", expected, outBuf.String())
	}
}

func TestTextHandler_Output_RendererFailure(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf,
		WithTextHandlerRenderer(func(string) (string, error) {
			return "", errors.New("no terminal")
		}),
	)

	if err := handler.Output(context.Background(), "plain reply"); err != nil {
		t.Fatalf("Output failed: %v", err)
	}
	if outBuf.String() != "plain reply\n" {
		t.Errorf("Expected raw reply, got %q", outBuf.String())
	}
}

func TestTextHandler_Input(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("a mocha\r\nsecond line"), outBuf, WithTextHandlerPrompt("you> "))
	ctx := context.Background()

	got, err := handler.Input(ctx)
	if err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	if got != "a mocha" {
		t.Errorf("Expected 'a mocha', got %q", got)
	}

	got, err = handler.Input(ctx)
	if err != nil {
		t.Fatalf("Input failed: %v", err)
	}
	if got != "second line" {
		t.Errorf("Expected 'second line', got %q", got)
	}

	if _, err := handler.Input(ctx); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
	if !strings.HasPrefix(outBuf.String(), "you> ") {
		t.Errorf("Expected prompt in output, got %q", outBuf.String())
	}
}

func TestTextHandler_Input_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	handler := NewTextHandler(pr, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := handler.Input(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}
}
