package service

import (
	"strings"
	"testing"
)

// Logger stub shared by service package tests.
type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

func TestGarbleDetector_EmptyInputs(t *testing.T) {
	d := NewGarbleDetector(0.30, &mockLogger{})

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"spaces only", "   "},
		{"tabs and newlines", "\t\n \r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !d.IsGarbled(tt.text) {
				t.Errorf("IsGarbled(%q) = false, want true", tt.text)
			}
		})
	}
}

func TestGarbleDetector_CleanText(t *testing.T) {
	d := NewGarbleDetector(0.30, &mockLogger{})

	tests := []struct {
		name string
		text string
	}{
		{"plain sentence", "The cat sat on the mat."},
		{"single character", "a"},
		{"digits", "12345"},
		{"allowed punctuation", "Hello, world! (Really; truly) - isn't it: \"yes\"?"},
		{"telugu", "పిల్లి చాప మీద కూర్చుంది"},
		{"hindi", "बिल्ली चटाई पर बैठी है"},
		{"tamil", "பூனை பாயில் அமர்ந்தது"},
		{"mixed english and telugu", "Chapter 1 అధ్యాయం"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d.IsGarbled(tt.text) {
				t.Errorf("IsGarbled(%q) = true, want false", tt.text)
			}
		})
	}
}

func TestGarbleDetector_GarbledText(t *testing.T) {
	d := NewGarbleDetector(0.30, &mockLogger{})

	tests := []struct {
		name string
		text string
	}{
		{"symbol soup", "�����㐀㐁㐂㐃㐄"},
		{"mostly specials", "@#$%^&*@#$%^&*ab"},
		{"font encoding junk", strings.Repeat("\uE001\uE002", 20) + "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !d.IsGarbled(tt.text) {
				t.Errorf("IsGarbled(%q) = false, want true", tt.text)
			}
		})
	}
}

// The verdict is strictly greater-than: text exactly at the threshold passes.
func TestGarbleDetector_ThresholdBoundary(t *testing.T) {
	d := NewGarbleDetector(0.30, &mockLogger{})

	// 10 non-whitespace runes, 3 special: ratio 0.30 exactly.
	atThreshold := "abcdefg☃☃☃"
	if d.IsGarbled(atThreshold) {
		t.Errorf("IsGarbled(%q) = true at exactly the threshold, want false", atThreshold)
	}

	// 10 non-whitespace runes, 4 special: ratio 0.40.
	aboveThreshold := "abcdef☃☃☃☃"
	if !d.IsGarbled(aboveThreshold) {
		t.Errorf("IsGarbled(%q) = false above the threshold, want true", aboveThreshold)
	}
}

func TestGarbleDetector_WhitespaceIgnoredInRatio(t *testing.T) {
	d := NewGarbleDetector(0.30, &mockLogger{})

	// Whitespace is stripped before counting, so padding cannot launder
	// garbled text into a clean verdict.
	padded := "☃ ☃ ☃ ☃ ☃ ☃ a b"
	if !d.IsGarbled(padded) {
		t.Errorf("IsGarbled(%q) = false, want true", padded)
	}
}

func TestGarbleDetector_DefaultThreshold(t *testing.T) {
	d := NewGarbleDetector(0, &mockLogger{})
	if d.threshold != DefaultGarbledThreshold {
		t.Errorf("threshold = %v, want default %v", d.threshold, DefaultGarbledThreshold)
	}
}
