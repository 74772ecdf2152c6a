package errors

import (
	"fmt"
	"testing"
)

func TestDocsError_Error(t *testing.T) {
	err := &DocsError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "tool not found: Foo",
	}

	expected := "NOT_FOUND: tool not found: Foo"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("name is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "name is required" {
		t.Errorf("Message = %q, want %q", err.Message, "name is required")
	}
}

func TestNewInvalidCategory(t *testing.T) {
	err := NewInvalidCategory("network", []string{"core", "file"})

	if err.Code != ErrInvalidCategory {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidCategory)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Details["category"] != "network" {
		t.Errorf("Details[category] = %v, want %q", err.Details["category"], "network")
	}
	if valid, ok := err.Details["valid"].([]string); !ok || len(valid) != 2 {
		t.Errorf("Details[valid] = %v, want 2 values", err.Details["valid"])
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("tool", "Foo")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Message != "tool not found: Foo" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["identifier"] != "Foo" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "Foo")
	}
	if err.Details["kind"] != "tool" {
		t.Errorf("Details[kind] = %v, want %q", err.Details["kind"], "tool")
	}
}

func TestNewInvalidCatalog(t *testing.T) {
	err := NewInvalidCatalog("duplicate entry name \"Read\"")

	if err.Code != ErrInvalidCatalog {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidCatalog)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("template parse failed"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details["internal_error"] != "template parse failed" {
			t.Errorf("Details[internal_error] = %v", err.Details["internal_error"])
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Details == nil {
			t.Error("Details should not be nil")
		}
		if _, ok := err.Details["internal_error"]; ok {
			t.Error("Details should not carry internal_error for nil cause")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("page", "x"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("page", "x"), ErrInvalidCategory) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("load catalog: %w", NewInvalidCatalog("empty"))
		if !Is(err, ErrInvalidCatalog) {
			t.Error("Is() = false for wrapped error, want true")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if Is(fmt.Errorf("boom"), ErrInternal) {
			t.Error("Is() = true for plain error, want false")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if Is(nil, ErrInternal) {
			t.Error("Is(nil) = true, want false")
		}
	})
}
