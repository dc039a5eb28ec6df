package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// JSONEvent is one line written by the JSONHandler.
type JSONEvent struct {
	Type string `json:"type"` // "reply" or "system"
	Text string `json:"text"`
}

// jsonMessage is the object form accepted on input.
type jsonMessage struct {
	Text string `json:"text"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, reply string) error {
	return h.Encoder.Encode(JSONEvent{Type: "reply", Text: reply})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(JSONEvent{Type: "system", Text: msg})
}

// Input reads one line. It accepts {"text": "..."}, a JSON string or raw text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSpace(line)

	var msg jsonMessage
	if strings.HasPrefix(line, "{") {
		if err := json.Unmarshal([]byte(line), &msg); err == nil {
			return msg.Text, nil
		}
	}

	var val string
	if err := json.Unmarshal([]byte(line), &val); err == nil {
		return val, nil
	}

	return line, nil
}
