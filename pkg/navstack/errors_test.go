package navstack

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewDecodeErrorDefaultsToMalformed(t *testing.T) {
	err := NewDecodeError("SET", "route", nil)
	if !IsMalformed(err) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}
	if err.Error() != `navstack: decode SET: field "route": navstack: malformed action` {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestDecodeErrorWrapped(t *testing.T) {
	inner := fmt.Errorf("%w: element 1 is int", ErrMalformedAction)
	err := fmt.Errorf("replay: %w", NewDecodeError("SET", "skipRoute", inner))

	if !IsDecodeError(err) {
		t.Fatal("IsDecodeError should see through wrapping")
	}
	if !IsMalformed(err) {
		t.Fatal("IsMalformed should see through wrapping")
	}
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.Field != "skipRoute" {
		t.Fatalf("errors.As = %+v", decErr)
	}
	if IsDecodeError(ErrClosed) {
		t.Fatal("ErrClosed is not a decode error")
	}
}
