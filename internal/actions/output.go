// Package actions writes step outputs for GitHub Actions workflows.
package actions

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
)

const defaultDelimiter = "EOF"

// OutputWriter appends step outputs to the file named by GITHUB_OUTPUT.
// A writer without a path discards everything.
type OutputWriter struct {
	path string
	mu   sync.Mutex
}

// NewOutputWriter creates a writer for path. An empty path disables output.
func NewOutputWriter(path string) *OutputWriter {
	return &OutputWriter{path: path}
}

// Enabled reports whether outputs are written anywhere.
func (w *OutputWriter) Enabled() bool {
	return w != nil && w.path != ""
}

// Output is a single step output.
type Output struct {
	Key   string
	Value string
}

// Set writes one output.
func (w *OutputWriter) Set(key, value string) error {
	return w.SetAll(Output{Key: key, Value: value})
}

// SetAll writes outputs in order with a single file append. Single-line
// values use key=value, multi-line values a key<<EOF heredoc block.
func (w *OutputWriter) SetAll(outputs ...Output) error {
	if !w.Enabled() {
		return nil
	}

	var sb strings.Builder
	for _, o := range outputs {
		if o.Key == "" || strings.ContainsAny(o.Key, "=\r\n") {
			return fmt.Errorf("invalid output key %q", o.Key)
		}
		if !strings.ContainsAny(o.Value, "\r\n") {
			fmt.Fprintf(&sb, "%s=%s\n", o.Key, o.Value)
			continue
		}
		delim := delimiterFor(o.Value)
		fmt.Fprintf(&sb, "%s<<%s\n%s\n%s\n", o.Key, delim, strings.TrimRight(o.Value, "\n"), delim)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // path comes from the runner
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT file: %w", err)
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write GITHUB_OUTPUT file: %w", err)
	}
	return f.Close()
}

// delimiterFor returns EOF unless the value contains a line equal to it.
func delimiterFor(value string) string {
	if !containsLine(value, defaultDelimiter) {
		return defaultDelimiter
	}
	for {
		b := make([]byte, 8)
		_, _ = rand.Read(b)
		delim := "ghadelimiter_" + hex.EncodeToString(b)
		if !containsLine(value, delim) {
			return delim
		}
	}
}

func containsLine(value, line string) bool {
	for _, l := range strings.Split(value, "\n") {
		if strings.TrimRight(l, "\r") == line {
			return true
		}
	}
	return false
}
