package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	for _, sentinel := range []error{
		ErrItemNotFound, ErrInvalidItem, ErrInvalidStatus,
		ErrBackendUnavailable, ErrBackendRejected, ErrBackendUnauthorized,
	} {
		wrapped := fmt.Errorf("update item 42: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("errors.Is must match wrapped %v", sentinel)
		}
	}
}

func TestFieldErrors_Err(t *testing.T) {
	if err := (FieldErrors{}).Err(); err != nil {
		t.Fatalf("empty FieldErrors should yield nil, got %v", err)
	}

	err := FieldErrors{"title": "This field is required", "category": "This field is required"}.Err()
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}

	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatal("expected errors.As to recover FieldErrors")
	}
	if fields["title"] != "This field is required" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	got := FieldErrors{"title": "a", "category": "b"}.Error()
	if got != "category: b; title: a" {
		t.Errorf("unexpected message %q", got)
	}
}
