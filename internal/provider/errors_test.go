package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_MatchesExactlyOneKind(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrTransport, ErrMalformedPayload, ErrDecode}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"transport", NewTransportError("analyze", context.DeadlineExceeded), ErrTransport},
		{"status", NewStatusError("analyze", 500, nil), ErrTransport},
		{"malformed", NewMalformedPayloadError(errors.New("unexpected EOF")), ErrMalformedPayload},
		{"decode", NewDecodeError("Mija", `"x"`, "not a non-negative integer"), ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("morphology: analyze: %w", tt.err)
			for _, s := range sentinels {
				got := errors.Is(wrapped, s)
				if got != (s == tt.want) {
					t.Errorf("errors.Is(%v, %v) = %v", wrapped, s, got)
				}
			}
		})
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	err := NewTransportError("tokenize", context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected cause to be reachable through errors.Is")
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	i := 2
	e := NewDecodeError("Leksēmas nr", `"abc"`, "not a non-negative integer")
	e.Op = "analyze"
	e.Element = &i

	want := `analyze: decode at element 2 in "Leksēmas nr": not a non-negative integer (value "abc")`
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	st := NewStatusError("analyze", 500, &RemoteError{Code: 500, Message: "boom"})
	if got := st.Error(); !strings.Contains(got, "status 500") || !strings.Contains(got, "service error 500: boom") {
		t.Errorf("status error message = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	if k := KindOf(errors.New("plain")); k != 0 {
		t.Errorf("KindOf(plain) = %v, want 0", k)
	}
	wrapped := fmt.Errorf("outer: %w", NewMalformedPayloadError(nil))
	if k := KindOf(wrapped); k != KindMalformedPayload {
		t.Errorf("KindOf(wrapped) = %v, want %v", k, KindMalformedPayload)
	}
	if s := KindDecode.String(); s != "decode" {
		t.Errorf("KindDecode.String() = %q", s)
	}
}

func TestNewDecodeError_TruncatesAtRuneBoundary(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("ā", 100) // 200 bytes
	e := NewDecodeError("Vārds", long, "too long")
	if !strings.HasSuffix(e.Value, "…") {
		t.Fatalf("Value not truncated: %q", e.Value)
	}
	body := strings.TrimSuffix(e.Value, "…")
	if len(body) > maxValueLen {
		t.Errorf("truncated value is %d bytes, want <= %d", len(body), maxValueLen)
	}
	if !strings.HasPrefix(long, body) || len(body)%2 != 0 {
		t.Errorf("truncation split a rune: %q", body)
	}
}
