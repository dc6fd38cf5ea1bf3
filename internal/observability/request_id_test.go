package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDFromHeader(t *testing.T) {
	inbound := "6f1c2b9e-3d4a-4b7c-9e8f-0a1b2c3d4e5f"

	if got := RequestIDFromHeader(inbound); got != inbound {
		t.Fatalf("expected inbound id %q to be kept, got %q", inbound, got)
	}

	for _, v := range []string{"", "not-a-uuid", "<script>"} {
		got := RequestIDFromHeader(v)
		if got == v {
			t.Fatalf("expected %q to be replaced", v)
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected generated UUID for %q, got %q: %v", v, got, err)
		}
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "abc-123"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}
