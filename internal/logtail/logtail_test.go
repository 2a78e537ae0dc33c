package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero reads nothing", maxLines: 0, expected: nil},
		{name: "negative reads nothing", maxLines: -1, expected: nil},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exact (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than available (20)", maxLines: 20, expected: expectedAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Read = %#v, want %#v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("Read = %#v, want nil", got)
	}
}

func TestFormat(t *testing.T) {
	line := `{"time":"2024-05-01T08:00:00Z","level":"WARN","msg":"api request failed","request_id":"abc","endpoint":"snapshot"}`
	got := Format(line)
	if !strings.Contains(got, "WARN  api request failed endpoint=snapshot request_id=abc") {
		t.Fatalf("Format = %q", got)
	}

	if got := Format("plain text line"); got != "plain text line" {
		t.Fatalf("Format(plain) = %q, want unchanged", got)
	}
}

func TestTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	content := `{"level":"INFO","msg":"one"}` + "\n" + `{"level":"INFO","msg":"two"}` + "\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Tail(logPath, 1)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "INFO  two" {
		t.Fatalf("Tail = %#v, want [\"INFO  two\"]", got)
	}
}
