package ui

import (
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short stays", "abc", 10, "abc"},
		{"exact stays", "abcde", 5, "abcde"},
		{"long gets ellipsis", "abcdefghij", 7, "abcd..."},
		{"tiny max", "abcdef", 2, "ab"},
		{"zero max", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/media/movies/some/long/path/movie.mkv", 20)
	if len(got) != 20 {
		t.Fatalf("truncateMiddle length = %d, want 20 (%q)", len(got), got)
	}
	if !strings.HasSuffix(got, "movie.mkv") {
		t.Fatalf("truncateMiddle = %q, want file name preserved", got)
	}
	if short := truncateMiddle("short", 20); short != "short" {
		t.Fatalf("truncateMiddle(short) = %q", short)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"negative clamps", -5, "0 B"},
		{"kilobytes", 12 * 1000, "12 kB"},
		{"gigabytes", 2_500_000_000, "2.5 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBytes(tt.input); got != tt.want {
				t.Fatalf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{500 * time.Millisecond, "now"},
		{42 * time.Second, "42s"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
	}
	for _, tt := range tests {
		if got := humanizeDuration(tt.input); got != tt.want {
			t.Errorf("humanizeDuration(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50, 10); strings.Count(got, "█") != 5 {
		t.Fatalf("progressBar(50, 10) = %q, want 5 filled cells", got)
	}
	if got := progressBar(150, 10); strings.Count(got, "█") != 10 {
		t.Fatalf("progressBar(150, 10) = %q, want fully filled", got)
	}
	if got := progressBar(-10, 10); strings.Count(got, "█") != 0 {
		t.Fatalf("progressBar(-10, 10) = %q, want empty", got)
	}
	if got := progressBar(50, 0); got != "" {
		t.Fatalf("progressBar(50, 0) = %q, want empty string", got)
	}
}
