package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestSchemaErrorMessage(t *testing.T) {
	err := NewSchemaError([]string{"Region"}, []string{"Date", "Region"})
	if !strings.Contains(err.Error(), "Region") || !strings.Contains(err.Error(), "expected: Date, Region") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestCoercionErrorUnwraps(t *testing.T) {
	cause := errors.New("bad date")
	err := NewCoercionError("Date", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected CoercionError to unwrap to its cause")
	}
	var ce *CoercionError
	if !errors.As(error(err), &ce) || ce.Column != "Date" {
		t.Fatalf("errors.As failed: %+v", ce)
	}
}

func TestDatabaseErrorUnwraps(t *testing.T) {
	cause := errors.New("unavailable")
	err := NewDatabaseError("read", "failed to load session", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected DatabaseError to unwrap to its cause")
	}
	if err.Error() != "failed to load session" {
		t.Fatalf("message = %q", err.Error())
	}
}
