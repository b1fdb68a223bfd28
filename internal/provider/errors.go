package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a provider failure.
type ErrorKind int

const (
	// KindTransport is a failure below the payload: connection, timeout or a non-2xx status.
	KindTransport ErrorKind = iota + 1
	// KindMalformedPayload means the response body is not parseable JSON.
	KindMalformedPayload
	// KindDecode means the body parsed but a field or map key failed validation.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformedPayload:
		return "malformed_payload"
	case KindDecode:
		return "decode"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. Every *Error matches exactly one kind sentinel.
var (
	ErrTransport        = errors.New("transport error")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrDecode           = errors.New("decode error")

	// ErrUnknownLabel is matched in addition to ErrDecode when a label
	// is outside its domain's fixed table.
	ErrUnknownLabel = errors.New("unknown label")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindMalformedPayload:
		return ErrMalformedPayload
	case KindDecode:
		return ErrDecode
	}
	return nil
}

// Error is the single error type returned by the morphology provider.
type Error struct {
	Kind ErrorKind
	// Op is the service operation, e.g. "analyze".
	Op string
	// Element is the position of the failing record in a list response.
	Element *int
	// Field is the contract key or map key that failed; decode errors only.
	Field string
	// Value is the offending raw value, truncated for display.
	Value string
	// Reason is a short human-readable explanation.
	Reason string
	// Status is the HTTP status code for transport errors answered by the server.
	Status int
	// Remote is the service's structured error body, when it sent one.
	Remote *RemoteError
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Element != nil {
		fmt.Fprintf(&b, " at element %d", *e.Element)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " in %q", e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (value %s)", e.Value)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Remote != nil {
		fmt.Fprintf(&b, ": service error %d: %s", e.Remote.Code, e.Remote.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// RemoteError is the error object the service returns with non-2xx statuses.
type RemoteError struct {
	Code          int            `json:"code"`
	Message       string         `json:"message"`
	RequestParams []RequestParam `json:"request_params,omitempty"`
}

// RequestParam echoes one request parameter in a RemoteError.
type RequestParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewTransportError wraps a lower-layer failure.
func NewTransportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// NewStatusError reports a non-2xx HTTP answer.
func NewStatusError(op string, status int, remote *RemoteError) *Error {
	return &Error{
		Kind:   KindTransport,
		Op:     op,
		Reason: "unexpected status",
		Status: status,
		Remote: remote,
	}
}

// NewMalformedPayloadError reports a body that is not well-formed JSON.
func NewMalformedPayloadError(err error) *Error {
	return &Error{Kind: KindMalformedPayload, Reason: "response is not valid JSON", Err: err}
}

// NewDecodeError reports a field or key that failed validation.
func NewDecodeError(field, value, reason string) *Error {
	return &Error{Kind: KindDecode, Field: field, Value: truncate(value), Reason: reason}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

const maxValueLen = 120

func truncate(s string) string {
	if len(s) <= maxValueLen {
		return s
	}
	cut := maxValueLen
	// Back up to a rune boundary.
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut] + "…"
}
