package testutil

import (
	"errors"
	"testing"

	apperrors "fiscalbook/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertFieldError checks that a validation map carries the expected code
// for a field.
func AssertFieldError(t *testing.T, fields apperrors.FieldErrors, field, expectedCode string) {
	t.Helper()

	code, ok := fields[field]
	if !ok {
		t.Fatalf("expected a validation error on field %q, got %v", field, fields)
	}
	if code != expectedCode {
		t.Errorf("expected code %q on field %q, got %q", expectedCode, field, code)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
