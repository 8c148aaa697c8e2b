package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "empty item maps to VAL001",
			err:         &ValidationError{Field: FieldItem, Message: "required field is empty"},
			wantCode:    "VAL001",
			wantMessage: "Item name is required",
		},
		{
			name:        "bad price maps to VAL002",
			err:         &ValidationError{Field: FieldPrice, Value: "abc", Message: "invalid number"},
			wantCode:    "VAL002",
			wantMessage: "Price and quantity must be numbers",
		},
		{
			name:        "wrapped validation error",
			err:         fmt.Errorf("add row: %w", &ValidationError{Field: FieldQuantity, Message: "invalid number"}),
			wantCode:    "VAL002",
			wantMessage: "Price and quantity must be numbers",
		},
		{
			name:        "table not found",
			err:         fmt.Errorf("%w: 1234", ErrTableNotFound),
			wantCode:    "TBL001",
			wantMessage: "This table no longer exists",
		},
		{
			name:        "bad row id",
			err:         errors.New(`invalid request: row id "x"`),
			wantCode:    "REQ001",
			wantMessage: "The request was malformed",
		},
		{
			name:        "context canceled",
			err:         context.Canceled,
			wantCode:    "REQ002",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "deadline exceeded",
			err:         context.DeadlineExceeded,
			wantCode:    "REQ003",
			wantMessage: "Request timed out",
		},
		{
			name:        "missing api key",
			err:         errors.New("missing API key"),
			wantCode:    "AUTH001",
			wantMessage: "An API key is required",
		},
		{
			name:        "invalid api key",
			err:         errors.New("invalid API key"),
			wantCode:    "AUTH002",
			wantMessage: "The API key was not accepted",
		},
		{
			name:        "rate limit",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "pattern match is case insensitive",
			err:         errors.New("Invalid Number"),
			wantCode:    "VAL002",
			wantMessage: "Price and quantity must be numbers",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("something completely unexpected"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)
			if result.Code != tt.wantCode {
				t.Errorf("MapError() Code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.Message != tt.wantMessage {
				t.Errorf("MapError() Message = %q, want %q", result.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := &ValidationError{Field: FieldItem, Message: "required field is empty"}
	result := FormatUserError(err)

	expected := "Item name is required (Code: VAL001). Enter an item name"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "validation error is user facing", err: &ValidationError{Field: FieldPrice}, want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("%w: abc", ErrTableNotFound)
		userErr := NewUserError(techErr)

		if userErr.Error() != "This table no longer exists" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, ErrTableNotFound) {
			t.Error("Unwrap() should expose the original error")
		}
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: FieldPrice, Value: "x", Message: "invalid number"}
	if got := err.Error(); got != "price: invalid number" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false")
	}
	if errors.Is(err, ErrTableNotFound) {
		t.Error("validation error matched ErrTableNotFound")
	}

	bare := &ValidationError{Message: "bad"}
	if got := bare.Error(); got != "bad" {
		t.Errorf("Error() without field = %q", got)
	}
}
