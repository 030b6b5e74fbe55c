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
	logPath := filepath.Join(t.TempDir(), "matchday.log")

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
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (3)", maxLines: 3, expected: expectedAll[7:]},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{
			name:  "slog text line",
			input: `time=2025-10-08T21:01:05.000+02:00 level=INFO msg="sports loaded" sports=3 session=abc`,
			want: Entry{
				Time:    "2025-10-08T21:01:05.000+02:00",
				Level:   "INFO",
				Message: "sports loaded",
				Attrs:   []Attr{{Key: "sports", Value: "3"}, {Key: "session", Value: "abc"}},
			},
		},
		{
			name:  "quoted attr with escapes",
			input: `level=WARN msg=retry error="dial tcp: \"refused\""`,
			want: Entry{
				Level:   "WARN",
				Message: "retry",
				Attrs:   []Attr{{Key: "error", Value: `dial tcp: "refused"`}},
			},
		},
		{
			name:  "free text",
			input: "panic: something broke",
			want:  Entry{Message: "panic: something broke"},
		},
		{
			name:  "unterminated quote",
			input: `level=INFO msg="half`,
			want:  Entry{Message: `level=INFO msg="half`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			tt.want.Raw = tt.input
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
