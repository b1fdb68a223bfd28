package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
)

// morphologyService defines the operations MorphologyHandler exposes.
type morphologyService interface {
	Analyze(ctx context.Context, word string) ([]domain.AnalyzedWord, error)
	Tokenize(ctx context.Context, sentence string) ([]domain.Token, error)
	NormalizePhrase(ctx context.Context, sentence string) (string, error)
	SuitableParadigms(ctx context.Context, word string) ([]domain.Paradigm, error)
	InflectPhrase(ctx context.Context, sentence string) ([]domain.Inflection, error)
	RecentLookups(ctx context.Context, limit int) ([]domain.Lookup, error)
	LookupStats(ctx context.Context, window time.Duration) ([]domain.OutcomeCount, error)
}

// MorphologyHandler serves the morphology REST endpoints.
type MorphologyHandler struct {
	svc morphologyService
	log *slog.Logger
}

// NewMorphologyHandler creates a MorphologyHandler.
func NewMorphologyHandler(svc morphologyService, logger *slog.Logger) *MorphologyHandler {
	return &MorphologyHandler{svc: svc, log: logger.With("handler", "morphology")}
}

// Register mounts the handler's routes on mux under /api/v1.
func (h *MorphologyHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"GET /api/v1/analyze/{word}":       h.Analyze,
		"GET /api/v1/tokenize/{sentence}":  h.Tokenize,
		"GET /api/v1/normalize/{sentence}": h.Normalize,
		"GET /api/v1/paradigms/{word}":     h.Paradigms,
		"GET /api/v1/inflect/{sentence}":   h.Inflect,
		"GET /api/v1/lookups":              h.Lookups,
		"GET /api/v1/lookups/stats":        h.LookupStats,
	}
	for pattern, fn := range routes {
		var handler http.Handler = fn
		if wrap != nil {
			handler = wrap(handler)
		}
		mux.Handle(pattern, handler)
	}
}

type analyzeResponse struct {
	Word     string                `json:"word"`
	Analyses []domain.AnalyzedWord `json:"analyses"`
}

type tokenizeResponse struct {
	Sentence string         `json:"sentence"`
	Tokens   []domain.Token `json:"tokens"`
}

type normalizeResponse struct {
	Sentence   string `json:"sentence"`
	Normalized string `json:"normalized"`
}

type paradigmsResponse struct {
	Word      string            `json:"word"`
	Paradigms []domain.Paradigm `json:"paradigms"`
}

type inflectResponse struct {
	Sentence    string              `json:"sentence"`
	Inflections []domain.Inflection `json:"inflections"`
}

// Analyze handles GET /api/v1/analyze/{word}.
func (h *MorphologyHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	analyses, err := h.svc.Analyze(r.Context(), word)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Word: word, Analyses: nonNil(analyses)})
}

// Tokenize handles GET /api/v1/tokenize/{sentence}.
func (h *MorphologyHandler) Tokenize(w http.ResponseWriter, r *http.Request) {
	sentence := r.PathValue("sentence")
	tokens, err := h.svc.Tokenize(r.Context(), sentence)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenizeResponse{Sentence: sentence, Tokens: nonNil(tokens)})
}

// Normalize handles GET /api/v1/normalize/{sentence}.
func (h *MorphologyHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	sentence := r.PathValue("sentence")
	normalized, err := h.svc.NormalizePhrase(r.Context(), sentence)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Sentence: sentence, Normalized: normalized})
}

// Paradigms handles GET /api/v1/paradigms/{word}.
func (h *MorphologyHandler) Paradigms(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	paradigms, err := h.svc.SuitableParadigms(r.Context(), word)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, paradigmsResponse{Word: word, Paradigms: nonNil(paradigms)})
}

// Inflect handles GET /api/v1/inflect/{sentence}.
func (h *MorphologyHandler) Inflect(w http.ResponseWriter, r *http.Request) {
	sentence := r.PathValue("sentence")
	inflections, err := h.svc.InflectPhrase(r.Context(), sentence)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, inflectResponse{Sentence: sentence, Inflections: nonNil(inflections)})
}

type lookupResponse struct {
	ID          string    `json:"id"`
	Operation   string    `json:"operation"`
	Query       string    `json:"query"`
	Outcome     string    `json:"outcome"`
	ResultCount int       `json:"result_count"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Client      string    `json:"client,omitempty"`
	DurationMS  float64   `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type lookupsResponse struct {
	Lookups []lookupResponse `json:"lookups"`
}

const defaultStatsWindow = 24 * time.Hour

type statsResponse struct {
	Window   string         `json:"window"`
	Outcomes map[string]int `json:"outcomes"`
	Total    int            `json:"total"`
}

// Lookups handles GET /api/v1/lookups?limit=N.
func (h *MorphologyHandler) Lookups(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(w, "limit", "must be a positive integer")
			return
		}
		limit = n
	}

	lookups, err := h.svc.RecentLookups(r.Context(), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := lookupsResponse{Lookups: make([]lookupResponse, 0, len(lookups))}
	for _, l := range lookups {
		resp.Lookups = append(resp.Lookups, toLookupResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

// LookupStats handles GET /api/v1/lookups/stats?since=DURATION.
func (h *MorphologyHandler) LookupStats(w http.ResponseWriter, r *http.Request) {
	window := defaultStatsWindow
	if raw := r.URL.Query().Get("since"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			badRequest(w, "since", "must be a positive duration such as 1h or 30m")
			return
		}
		window = d
	}

	counts, err := h.svc.LookupStats(r.Context(), window)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := statsResponse{Outcomes: make(map[string]int, len(counts))}
	resp.Window = window.String()
	for _, c := range counts {
		resp.Outcomes[c.Outcome.String()] = c.Count
		resp.Total += c.Count
	}
	writeJSON(w, http.StatusOK, resp)
}

func toLookupResponse(l domain.Lookup) lookupResponse {
	return lookupResponse{
		ID:          l.ID.String(),
		Operation:   l.Operation.String(),
		Query:       l.Query,
		Outcome:     l.Outcome.String(),
		ResultCount: l.ResultCount,
		ErrorDetail: l.ErrorDetail,
		RequestID:   l.RequestID,
		Client:      l.Client,
		DurationMS:  float64(l.Duration.Microseconds()) / 1000,
		CreatedAt:   l.CreatedAt,
	}
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
