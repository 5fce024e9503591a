package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "   ", ""},
		{"plain", "Episode 1", "Episode 1"},
		{"separators", "AC/DC: Live\\Tour*", "AC-DC- Live-Tour-"},
		{"removed", `What? "Quote" <tag> a|b`, "What Quote tag ab"},
		{"control", "line\x00one\ttwo\nthree", "lineone two three"},
		{"collapse spaces", "a    b", "a b"},
		{"trailing dots", "...hidden name...", "hidden name"},
		{"cjk kept", "【4K】某某 第1集：开场", "【4K】某某 第1集：开场"},
		{"only unsafe", "???", ""},
		{"reserved", "con", "_con"},
		{"reserved with ext", "NUL.txt", "_NUL.txt"},
		{"nfc", "e\u0301cole", "\u00e9cole"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileNameTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("标题", 100)
	got := SanitizeFileName(long)
	if len(got) > maxFileNameBytes {
		t.Fatalf("expected at most %d bytes, got %d", maxFileNameBytes, len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
}
