package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" {
		t.Errorf("expected code INTERNAL_ERROR, got %s", err.Code)
	}
	if err.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.StatusCode)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to cause")
	}
	if ErrInternalServer.Internal != nil {
		t.Error("sentinel must not be mutated by Wrap")
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "guests_max must be >= guests_min")

	if err.Error() != "guests_max must be >= guests_min" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Code != ErrInvalidInput.Code || err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected code/status copied from sentinel, got %s/%d", err.Code, err.StatusCode)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel must not be mutated by WithMessage")
	}
}

func TestAsAppError(t *testing.T) {
	var err error = Wrap(ErrWeddingNotFound, stderrors.New("record not found"))

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Fatal("expected errors.As to find *AppError")
	}
	if appErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", appErr.StatusCode)
	}
}
