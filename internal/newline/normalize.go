// Package newline normalizes trailing newlines in text files.
package newline

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// Status reports the outcome of normalizing a single file.
type Status int

const (
	// StatusNormalized means the file content changed and was rewritten.
	StatusNormalized Status = iota
	// StatusAlreadyNormalized means the file already ended in a single newline.
	StatusAlreadyNormalized
	// StatusSkippedBinary means the content did not decode as text and the
	// file was left untouched. Reported as informational, not as a failure.
	StatusSkippedBinary
)

func (s Status) String() string {
	switch s {
	case StatusNormalized:
		return "normalized"
	case StatusAlreadyNormalized:
		return "already normalized"
	case StatusSkippedBinary:
		return "skipped, content is not text"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes what NormalizeFile did to a file.
type Result struct {
	Status Status
	Before string
	After  string
}

// Normalize strips any number of trailing newlines and appends exactly one.
func Normalize(content string) string {
	return strings.TrimRight(content, "\n") + "\n"
}

// NormalizeFile rewrites the file at path so it ends in exactly one newline.
// The file is fully read before any write begins; binary content is skipped.
func NormalizeFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	if isBinary(data) {
		return Result{Status: StatusSkippedBinary}, nil
	}

	before := string(data)
	after := Normalize(before)
	if after == before {
		return Result{Status: StatusAlreadyNormalized, Before: before, After: after}, nil
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, []byte(after), mode); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	return Result{Status: StatusNormalized, Before: before, After: after}, nil
}

// Diff renders a unified diff of the normalization for display.
func (r Result) Diff(path string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Before),
		B:        difflib.SplitLines(r.After),
		FromFile: fmt.Sprintf("a/%s", path),
		ToFile:   fmt.Sprintf("b/%s", path),
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}

func isBinary(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data)
}
