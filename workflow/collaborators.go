/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Confirmer asks the user a yes/no question. It is invoked at most once
// per destructive workflow, at a single well-defined point before any
// mutating call, and never interleaved with mutations.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// FileStore reads and writes raw bytes at a path.
type FileStore interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileStore is the real filesystem. WriteFile creates parent directories
// as needed.
type OSFileStore struct{}

func (OSFileStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileStore) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// TerminalConfirmer prompts on w and reads one line from r, accepting
// "y" or "yes" (case-insensitive) as approval.
type TerminalConfirmer struct {
	r *bufio.Reader
	w io.Writer
}

// NewTerminalConfirmer creates a TerminalConfirmer.
func NewTerminalConfirmer(r io.Reader, w io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{r: bufio.NewReader(r), w: w}
}

func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.w, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := c.r.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// StaticConfirmer always answers the same way; used for AssumeYes and in
// tests.
type StaticConfirmer bool

func (c StaticConfirmer) Confirm(string) (bool, error) {
	return bool(c), nil
}
