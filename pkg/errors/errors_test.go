package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnsupportedNode, "no mapping for node type %s", "TEX_SKY")

	if err.Code != ErrCodeUnsupportedNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnsupportedNode)
	}

	if err.Message != "no mapping for node type TEX_SKY" {
		t.Errorf("Message = %v, want %v", err.Message, "no mapping for node type TEX_SKY")
	}

	expected := "UNSUPPORTED_NODE_TYPE: no mapping for node type TEX_SKY"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to serialize document")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeCycleDetected, "cycle through node X"),
			code:     ErrCodeCycleDetected,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeCycleDetected, "cycle through node X"),
			code:     ErrCodeUnsupportedNode,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeConversionUnavailable, errors.New("inner"), "color3 to boolean"),
			code:     ErrCodeConversionUnavailable,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNodeDefNotFound, "x")); got != ErrCodeNodeDefNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeNodeDefNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad socket")); got != "bad socket" {
		t.Errorf("UserMessage() = %v, want %v", got, "bad socket")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %v, want plain", got)
	}
}
