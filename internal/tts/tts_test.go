package tts

import (
	"strings"
	"testing"
)

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10, 4.0},
		{0.1, 0.25},
		{1.0, 1.0},
		{0.25, 0.25},
		{4.0, 4.0},
		{-3, 0.25},
	}
	for _, tt := range tests {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	long := strings.Repeat("a", 5000)
	got := TruncateText(long)
	if len([]rune(got)) != MaxInputChars {
		t.Errorf("TruncateText() length = %d, want %d", len([]rune(got)), MaxInputChars)
	}

	short := "hello"
	if TruncateText(short) != short {
		t.Error("TruncateText() modified text under the limit")
	}

	exact := strings.Repeat("b", MaxInputChars)
	if TruncateText(exact) != exact {
		t.Error("TruncateText() modified text at exactly the limit")
	}
}

func TestTruncateTextMultibyte(t *testing.T) {
	long := strings.Repeat("ü", 5000)
	got := TruncateText(long)
	if n := len([]rune(got)); n != MaxInputChars {
		t.Errorf("TruncateText() rune length = %d, want %d", n, MaxInputChars)
	}
	if !strings.HasPrefix(long, got) {
		t.Error("TruncateText() split a multibyte rune")
	}
}
