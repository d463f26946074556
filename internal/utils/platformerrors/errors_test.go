package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsErrorType(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{
			name:    "direct match",
			err:     NewError(ctx, LayerDomain, ErrorTypeNotFound, "client not found"),
			errType: ErrorTypeNotFound,
			want:    true,
		},
		{
			name:    "mismatch",
			err:     NewError(ctx, LayerDomain, ErrorTypeNotFound, "client not found"),
			errType: ErrorTypeValidation,
			want:    false,
		},
		{
			name:    "wrapped once",
			err:     AsError(ctx, LayerHandler, NewError(ctx, LayerRepository, ErrorTypeDatabaseError, "read failed"), "get client"),
			errType: ErrorTypeDatabaseError,
			want:    true,
		},
		{
			name:    "wrapped with fmt.Errorf",
			err:     fmt.Errorf("outer: %w", NewError(ctx, LayerDomain, ErrorTypeConflict, "duplicate email")),
			errType: ErrorTypeConflict,
			want:    true,
		},
		{
			name:    "plain error",
			err:     errors.New("boom"),
			errType: ErrorTypeInternal,
			want:    false,
		},
		{
			name:    "nil error",
			err:     nil,
			errType: ErrorTypeNotFound,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsErrorType(tt.err, tt.errType); got != tt.want {
				t.Errorf("IsErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsErrorPreservesType(t *testing.T) {
	ctx := context.Background()

	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "order not found")
	wrapped := AsError(ctx, LayerDomain, inner, "get order")

	if wrapped.Code != ErrorTypeNotFound {
		t.Errorf("AsError() code = %v, want %v", wrapped.Code, ErrorTypeNotFound)
	}
	if wrapped.Layer != LayerDomain {
		t.Errorf("AsError() layer = %v, want %v", wrapped.Layer, LayerDomain)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("AsError() lost the wrapped cause")
	}
}

func TestAsErrorUnclassified(t *testing.T) {
	ctx := context.Background()

	wrapped := AsError(ctx, LayerDomain, errors.New("disk full"), "save client")
	if wrapped.Code != ErrorTypeInternal {
		t.Errorf("AsError() code = %v, want %v", wrapped.Code, ErrorTypeInternal)
	}
}

func TestAsErrorNil(t *testing.T) {
	if got := AsError(context.Background(), LayerDomain, nil, "noop"); got != nil {
		t.Errorf("AsError(nil) = %v, want nil", got)
	}
}

func TestTypeOf(t *testing.T) {
	ctx := context.Background()

	if got := TypeOf(NewError(ctx, LayerDomain, ErrorTypeValidation, "bad email")); got != ErrorTypeValidation {
		t.Errorf("TypeOf() = %v, want %v", got, ErrorTypeValidation)
	}
	if got := TypeOf(errors.New("plain")); got != ErrorTypeInternal {
		t.Errorf("TypeOf() = %v, want %v", got, ErrorTypeInternal)
	}
}

func TestErrorString(t *testing.T) {
	ctx := context.Background()

	err := NewErrorWithCause(ctx, LayerRepository, ErrorTypeDatabaseError, "decode clients.json", errors.New("unexpected EOF"))
	msg := err.Error()
	for _, want := range []string{"repository", "database_error", "decode clients.json", "unexpected EOF"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    int
	}{
		{ErrorTypeValidation, 400},
		{ErrorTypeUnauthorized, 401},
		{ErrorTypeForbidden, 403},
		{ErrorTypeNotFound, 404},
		{ErrorTypeConflict, 409},
		{ErrorTypeNoToolMatched, 422},
		{ErrorTypeTooManyRequests, 429},
		{ErrorTypeNotImplemented, 501},
		{ErrorTypeExternal, 502},
		{ErrorTypeDatabaseError, 500},
		{ErrorTypeToolExecution, 500},
		{ErrorTypeInternal, 500},
		{ErrorType("made_up"), 500},
	}

	for _, tt := range tests {
		if got := ErrorTypeToHTTPStatus(tt.errType); got != tt.want {
			t.Errorf("ErrorTypeToHTTPStatus(%q) = %d, want %d", tt.errType, got, tt.want)
		}
	}
}
