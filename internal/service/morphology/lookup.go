package morphology

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
	"github.com/heartmarshall/tezaurs-gateway/pkg/ctxutil"
)

// Analyze returns every morphological analysis of a single word.
func (s *Service) Analyze(ctx context.Context, word string) ([]domain.AnalyzedWord, error) {
	return lookup(ctx, s, domain.OperationAnalyze, "word", word, s.provider.Analyze, lenOf[domain.AnalyzedWord])
}

// Tokenize splits a sentence into tagged tokens in sentence order.
func (s *Service) Tokenize(ctx context.Context, sentence string) ([]domain.Token, error) {
	return lookup(ctx, s, domain.OperationTokenize, "sentence", sentence, s.provider.Tokenize, lenOf[domain.Token])
}

// NormalizePhrase returns the base form of a phrase.
func (s *Service) NormalizePhrase(ctx context.Context, sentence string) (string, error) {
	return lookup(ctx, s, domain.OperationNormalize, "sentence", sentence, s.provider.NormalizePhrase,
		func(string) int { return 1 })
}

// SuitableParadigms suggests inflection paradigms for a word the service does not know.
func (s *Service) SuitableParadigms(ctx context.Context, word string) ([]domain.Paradigm, error) {
	return lookup(ctx, s, domain.OperationParadigm, "word", word, s.provider.SuitableParadigms, lenOf[domain.Paradigm])
}

// InflectPhrase returns the phrase in each case the service produces.
// The order of the result is unspecified.
func (s *Service) InflectPhrase(ctx context.Context, sentence string) ([]domain.Inflection, error) {
	return lookup(ctx, s, domain.OperationInflect, "sentence", sentence, s.provider.InflectPhrase, lenOf[domain.Inflection])
}

func lenOf[T any](v []T) int { return len(v) }

// lookup validates the query, calls the provider and journals the outcome.
func lookup[T any](
	ctx context.Context,
	s *Service,
	op domain.Operation,
	field, text string,
	call func(context.Context, string) (T, error),
	count func(T) int,
) (T, error) {
	var zero T

	query, err := validateQuery(field, text)
	if err != nil {
		return zero, err
	}

	start := s.now()
	result, err := call(ctx, query)
	elapsed := s.now().Sub(start)

	entry := domain.Lookup{
		ID:        uuid.New(),
		Operation: op,
		Query:     query,
		Outcome:   domain.LookupOutcomeOK,
		RequestID: ctxutil.RequestIDFromCtx(ctx),
		Duration:  elapsed,
		CreatedAt: start.UTC(),
	}
	if client, ok := ctxutil.ClientFromCtx(ctx); ok {
		entry.Client = client
	}

	if err != nil {
		entry.Outcome = outcomeOf(err)
		entry.ErrorDetail = err.Error()
		s.record(ctx, entry)

		s.log.WarnContext(ctx, "morphology lookup failed",
			slog.String("op", op.String()),
			slog.String("query", query),
			slog.String("outcome", entry.Outcome.String()),
			slog.String("error", err.Error()),
		)
		return zero, fmt.Errorf("%s: %w", strings.ToLower(op.String()), err)
	}

	entry.ResultCount = count(result)
	s.record(ctx, entry)
	return result, nil
}

// record writes the journal entry. Failures are logged only; the lookup
// result stands regardless.
func (s *Service) record(ctx context.Context, entry domain.Lookup) {
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if err := s.journal.Record(jctx, entry); err != nil {
		s.log.ErrorContext(ctx, "record lookup",
			slog.String("lookup_id", entry.ID.String()),
			slog.String("op", entry.Operation.String()),
			slog.String("error", err.Error()),
		)
	}
}

func validateQuery(field, text string) (string, error) {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return "", domain.NewValidationError(field, "required")
	}
	if utf8.RuneCountInString(normalized) > maxQueryRunes {
		return "", domain.NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxQueryRunes))
	}
	return normalized, nil
}

func outcomeOf(err error) domain.LookupOutcome {
	switch provider.KindOf(err) {
	case provider.KindMalformedPayload:
		return domain.LookupOutcomeMalformed
	case provider.KindDecode:
		return domain.LookupOutcomeDecode
	default:
		return domain.LookupOutcomeTransport
	}
}

// RecentLookups lists the newest journal entries. Limit is clamped to
// [1, recent limit]; zero or less means the recent limit.
func (s *Service) RecentLookups(ctx context.Context, limit int) ([]domain.Lookup, error) {
	if limit <= 0 || limit > s.recentLimit {
		limit = s.recentLimit
	}
	lookups, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent lookups: %w", err)
	}
	return lookups, nil
}

// LookupStats counts journal entries per outcome over the given window.
// Every outcome is present in the result, in a fixed order.
func (s *Service) LookupStats(ctx context.Context, window time.Duration) ([]domain.OutcomeCount, error) {
	if window <= 0 {
		window = defaultStatsWindow
	}
	counts, err := s.journal.CountByOutcome(ctx, s.now().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("lookup stats: %w", err)
	}

	byOutcome := make(map[domain.LookupOutcome]int, len(counts))
	for _, c := range counts {
		byOutcome[c.Outcome] += c.Count
	}

	out := make([]domain.OutcomeCount, 0, len(allOutcomes))
	for _, o := range allOutcomes {
		out = append(out, domain.OutcomeCount{Outcome: o, Count: byOutcome[o]})
	}
	return out, nil
}

var allOutcomes = []domain.LookupOutcome{
	domain.LookupOutcomeOK,
	domain.LookupOutcomeTransport,
	domain.LookupOutcomeMalformed,
	domain.LookupOutcomeDecode,
}
