package newline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"foo", "foo\n"},
		{"foo\n", "foo\n"},
		{"foo\n\n\n", "foo\n"},
		{"", "\n"},
		{"foo\nbar", "foo\nbar\n"},
		{"foo\r\n", "foo\r\n"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestNormalizeFile_AppendsMissingNewline(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, []byte("foo"))
	result, err := NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile: %v", err)
	}
	if result.Status != StatusNormalized {
		t.Fatalf("status = %v, want %v", result.Status, StatusNormalized)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "foo\n" {
		t.Fatalf("content = %q, want %q", data, "foo\n")
	}
}

func TestNormalizeFile_CollapsesTrailingNewlines(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, []byte("foo\n\n\n"))
	result, err := NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile: %v", err)
	}
	if result.Status != StatusNormalized {
		t.Fatalf("status = %v, want %v", result.Status, StatusNormalized)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "foo\n" {
		t.Fatalf("content = %q, want %q", data, "foo\n")
	}
}

func TestNormalizeFile_AlreadyNormalized(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, []byte("foo\n"))
	result, err := NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile: %v", err)
	}
	if result.Status != StatusAlreadyNormalized {
		t.Fatalf("status = %v, want %v", result.Status, StatusAlreadyNormalized)
	}
}

func TestNormalizeFile_SkipsBinary(t *testing.T) {
	t.Parallel()

	binary := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0xff}
	path := writeTemp(t, binary)
	result, err := NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile: %v", err)
	}
	if result.Status != StatusSkippedBinary {
		t.Fatalf("status = %v, want %v", result.Status, StatusSkippedBinary)
	}
	data, _ := os.ReadFile(path)
	if string(data) != string(binary) {
		t.Fatalf("binary file was modified")
	}
}

func TestNormalizeFile_SkipsInvalidUTF8(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, []byte{'f', 'o', 'o', 0xfe, 0xfd})
	result, err := NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile: %v", err)
	}
	if result.Status != StatusSkippedBinary {
		t.Fatalf("status = %v, want %v", result.Status, StatusSkippedBinary)
	}
}

func TestResultDiff(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, []byte("foo"))
	result, err := NormalizeFile(path)
	if err != nil {
		t.Fatalf("NormalizeFile: %v", err)
	}
	diff, err := result.Diff("foo.txt")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(diff, "a/foo.txt") || !strings.Contains(diff, "+foo") {
		t.Fatalf("unexpected diff output: %q", diff)
	}
}
