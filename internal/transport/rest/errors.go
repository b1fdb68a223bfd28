package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
)

// Error kinds reported in response bodies.
const (
	kindValidation       = "validation"
	kindTransport        = "transport"
	kindMalformedPayload = "malformed_payload"
	kindDecode           = "decode"
	kindInternal         = "internal"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	// Set for decode errors.
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Element *int   `json:"element,omitempty"`
	// Set for transport errors answered by the upstream service.
	UpstreamStatus int                   `json:"upstream_status,omitempty"`
	Upstream       *provider.RemoteError `json:"upstream,omitempty"`

	Fields []fieldErrorBody `json:"fields,omitempty"`
}

type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, errorEnvelope{Error: body})
}

func badRequest(w http.ResponseWriter, field, msg string) {
	writeError(w, http.StatusBadRequest, errorBody{
		Kind:    kindValidation,
		Message: field + ": " + msg,
		Fields:  []fieldErrorBody{{Field: field, Message: msg}},
	})
}

// handleError maps service errors to HTTP responses.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body := errorBody{Kind: kindValidation, Message: ve.Error()}
		for _, fe := range ve.Errors {
			body.Fields = append(body.Fields, fieldErrorBody{Field: fe.Field, Message: fe.Message})
		}
		writeError(w, http.StatusBadRequest, body)
		return
	}

	var pe *provider.Error
	if errors.As(err, &pe) {
		writeProviderError(w, pe, err)
		return
	}

	log.ErrorContext(r.Context(), "unhandled error",
		slog.String("path", r.URL.EscapedPath()),
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusInternalServerError, errorBody{
		Kind:    kindInternal,
		Message: "internal server error",
	})
}

func writeProviderError(w http.ResponseWriter, pe *provider.Error, err error) {
	switch pe.Kind {
	case provider.KindMalformedPayload:
		writeError(w, http.StatusBadGateway, errorBody{
			Kind:    kindMalformedPayload,
			Message: err.Error(),
		})
	case provider.KindDecode:
		writeError(w, http.StatusBadGateway, errorBody{
			Kind:    kindDecode,
			Message: err.Error(),
			Field:   pe.Field,
			Value:   pe.Value,
			Element: pe.Element,
		})
	default:
		status := http.StatusBadGateway
		if isTimeout(err) {
			status = http.StatusGatewayTimeout
		}
		writeError(w, status, errorBody{
			Kind:           kindTransport,
			Message:        err.Error(),
			UpstreamStatus: pe.Status,
			Upstream:       pe.Remote,
		})
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
