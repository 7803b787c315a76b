// Package iojson reads dataset input from files or stdin and writes indented
// JSON output for the command line.
package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoInput is returned when input should come from stdin but stdin is a
// terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); pass a file or pipe input")

// Open opens path for reading. An empty path or "-" reads stdin, which must
// not be a terminal.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, ErrNoInput
		}
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// Error is the JSON shape of a command failure.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// WriteWith writes obj as indented JSON to w. Marshal failures are reported
// as an Error on ew.
func WriteWith(w, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		fallback, _ := json.Marshal(Error{
			Message: "marshal output",
			Data:    map[string]any{"json_error": err.Error()},
		})
		_, werr := fmt.Fprintln(ew, string(fallback))
		return errors.Join(err, werr)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with os.Stdout and os.Stderr.
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}
