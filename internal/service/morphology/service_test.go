package morphology

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/provider/tezaurs"
	"github.com/heartmarshall/tezaurs-gateway/internal/adapter/provider/tezaurs/tezaurstest"
	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
	"github.com/heartmarshall/tezaurs-gateway/internal/provider"
	"github.com/heartmarshall/tezaurs-gateway/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockProvider struct {
	AnalyzeFunc           func(ctx context.Context, word string) ([]domain.AnalyzedWord, error)
	TokenizeFunc          func(ctx context.Context, sentence string) ([]domain.Token, error)
	NormalizePhraseFunc   func(ctx context.Context, sentence string) (string, error)
	SuitableParadigmsFunc func(ctx context.Context, word string) ([]domain.Paradigm, error)
	InflectPhraseFunc     func(ctx context.Context, sentence string) ([]domain.Inflection, error)
}

func (m *mockProvider) Analyze(ctx context.Context, word string) ([]domain.AnalyzedWord, error) {
	return m.AnalyzeFunc(ctx, word)
}

func (m *mockProvider) Tokenize(ctx context.Context, sentence string) ([]domain.Token, error) {
	return m.TokenizeFunc(ctx, sentence)
}

func (m *mockProvider) NormalizePhrase(ctx context.Context, sentence string) (string, error) {
	return m.NormalizePhraseFunc(ctx, sentence)
}

func (m *mockProvider) SuitableParadigms(ctx context.Context, word string) ([]domain.Paradigm, error) {
	return m.SuitableParadigmsFunc(ctx, word)
}

func (m *mockProvider) InflectPhrase(ctx context.Context, sentence string) ([]domain.Inflection, error) {
	return m.InflectPhraseFunc(ctx, sentence)
}

type mockJournal struct {
	mu       sync.Mutex
	recorded []domain.Lookup

	RecordErr          error
	RecentFunc         func(ctx context.Context, limit int) ([]domain.Lookup, error)
	CountByOutcomeFunc func(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error)
}

func (m *mockJournal) Record(_ context.Context, l domain.Lookup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, l)
	return m.RecordErr
}

func (m *mockJournal) Recent(ctx context.Context, limit int) ([]domain.Lookup, error) {
	return m.RecentFunc(ctx, limit)
}

func (m *mockJournal) CountByOutcome(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error) {
	return m.CountByOutcomeFunc(ctx, since)
}

func (m *mockJournal) entries() []domain.Lookup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Lookup(nil), m.recorded...)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(p morphologyProvider, j lookupJournal) *Service {
	return NewService(newTestLogger(), p, j, 50)
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

func TestService_Analyze_RecordsOK(t *testing.T) {
	t.Parallel()

	var gotWord string
	p := &mockProvider{
		AnalyzeFunc: func(_ context.Context, word string) ([]domain.AnalyzedWord, error) {
			gotWord = word
			return tezaurstest.JuraAnalyses(), nil
		},
	}
	j := &mockJournal{}
	svc := newTestService(p, j)

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	ctx = ctxutil.WithClient(ctx, "reader")

	words, err := svc.Analyze(ctx, "  jūra ")
	require.NoError(t, err)
	assert.Len(t, words, 2)
	assert.Equal(t, "jūra", gotWord)

	entries := j.entries()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, domain.OperationAnalyze, e.Operation)
	assert.Equal(t, "jūra", e.Query)
	assert.Equal(t, domain.LookupOutcomeOK, e.Outcome)
	assert.Equal(t, 2, e.ResultCount)
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, "reader", e.Client)
	assert.Empty(t, e.ErrorDetail)
	assert.NotEqual(t, uuid.Nil, e.ID)
}

func TestService_NormalizesComposedAndDecomposedInput(t *testing.T) {
	t.Parallel()

	var seen []string
	p := &mockProvider{
		TokenizeFunc: func(_ context.Context, sentence string) ([]domain.Token, error) {
			seen = append(seen, sentence)
			return nil, nil
		},
	}
	svc := newTestService(p, nil)

	_, err := svc.Tokenize(context.Background(), "es domāju")
	require.NoError(t, err)
	_, err = svc.Tokenize(context.Background(), "es doma\u0304ju")
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
}

func TestService_ValidationErrors(t *testing.T) {
	t.Parallel()

	p := &mockProvider{
		AnalyzeFunc: func(context.Context, string) ([]domain.AnalyzedWord, error) {
			t.Error("provider must not be called for invalid input")
			return nil, nil
		},
	}
	j := &mockJournal{}
	svc := newTestService(p, j)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", " \t\n"},
		{"too long", strings.Repeat("ā", maxQueryRunes+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "word", ve.Errors[0].Field)
		})
	}
	assert.Empty(t, j.entries())
}

func TestService_ProviderErrorOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		outcome domain.LookupOutcome
		kind    error
	}{
		{"transport", provider.NewTransportError("inflect_phrase", context.DeadlineExceeded), domain.LookupOutcomeTransport, provider.ErrTransport},
		{"malformed", provider.NewMalformedPayloadError(errors.New("unexpected EOF")), domain.LookupOutcomeMalformed, provider.ErrMalformedPayload},
		{"decode", provider.NewDecodeError("Genitivs", `"Genitivs"`, "label outside the case table"), domain.LookupOutcomeDecode, provider.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &mockProvider{
				InflectPhraseFunc: func(context.Context, string) ([]domain.Inflection, error) {
					return nil, tt.err
				},
			}
			j := &mockJournal{}
			svc := newTestService(p, j)

			_, err := svc.InflectPhrase(context.Background(), "jūra")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, strings.HasPrefix(err.Error(), "inflect: "), err.Error())

			entries := j.entries()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.outcome, entries[0].Outcome)
			assert.Equal(t, domain.OperationInflect, entries[0].Operation)
			assert.NotEmpty(t, entries[0].ErrorDetail)
			assert.Zero(t, entries[0].ResultCount)
		})
	}
}

func TestService_JournalFailureDoesNotFailLookup(t *testing.T) {
	t.Parallel()

	p := &mockProvider{
		NormalizePhraseFunc: func(context.Context, string) (string, error) {
			return "jūra", nil
		},
	}
	j := &mockJournal{RecordErr: errors.New("connection refused")}
	svc := newTestService(p, j)

	got, err := svc.NormalizePhrase(context.Background(), "jūrai")
	require.NoError(t, err)
	assert.Equal(t, "jūra", got)
	assert.Len(t, j.entries(), 1)
}

func TestService_JournalOutlivesCancelledRequest(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	p := &mockProvider{
		SuitableParadigmsFunc: func(context.Context, string) ([]domain.Paradigm, error) {
			cancel()
			return nil, provider.NewTransportError("suitable_paradigm", context.Canceled)
		},
	}
	var journalCtxErr error
	j := &ctxCheckingJournal{check: func(ctx context.Context) { journalCtxErr = ctx.Err() }}
	svc := newTestService(p, j)

	_, err := svc.SuitableParadigms(ctx, "pokemonizators")
	require.Error(t, err)
	assert.NoError(t, journalCtxErr)
}

type ctxCheckingJournal struct {
	NopJournal
	check func(ctx context.Context)
}

func (j *ctxCheckingJournal) Record(ctx context.Context, _ domain.Lookup) error {
	j.check(ctx)
	return nil
}

// ---------------------------------------------------------------------------
// Journal queries
// ---------------------------------------------------------------------------

func TestService_RecentLookups_ClampsLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want int
	}{
		{0, 50},
		{-3, 50},
		{1, 1},
		{20, 20},
		{50, 50},
		{500, 50},
	}

	for _, tt := range tests {
		var got int
		j := &mockJournal{
			RecentFunc: func(_ context.Context, limit int) ([]domain.Lookup, error) {
				got = limit
				return nil, nil
			},
		}
		svc := newTestService(&mockProvider{}, j)
		_, err := svc.RecentLookups(context.Background(), tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "limit %d", tt.in)
	}
}

func TestService_RecentLookups_Error(t *testing.T) {
	t.Parallel()

	j := &mockJournal{
		RecentFunc: func(context.Context, int) ([]domain.Lookup, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestService(&mockProvider{}, j)

	_, err := svc.RecentLookups(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent lookups")
}

func TestService_LookupStats_FillsEveryOutcome(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotSince time.Time
	j := &mockJournal{
		CountByOutcomeFunc: func(_ context.Context, since time.Time) ([]domain.OutcomeCount, error) {
			gotSince = since
			return []domain.OutcomeCount{
				{Outcome: domain.LookupOutcomeOK, Count: 12},
				{Outcome: domain.LookupOutcomeDecode, Count: 2},
			}, nil
		},
	}
	svc := newTestService(&mockProvider{}, j)
	svc.now = func() time.Time { return now }

	stats, err := svc.LookupStats(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour), gotSince)
	assert.Equal(t, []domain.OutcomeCount{
		{Outcome: domain.LookupOutcomeOK, Count: 12},
		{Outcome: domain.LookupOutcomeTransport, Count: 0},
		{Outcome: domain.LookupOutcomeMalformed, Count: 0},
		{Outcome: domain.LookupOutcomeDecode, Count: 2},
	}, stats)
}

func TestService_NopJournal(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockProvider{}, nil)

	lookups, err := svc.RecentLookups(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, lookups)

	stats, err := svc.LookupStats(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Len(t, stats, 4)
}

// ---------------------------------------------------------------------------
// Against the stand-in service
// ---------------------------------------------------------------------------

func TestService_WithTezaursProvider(t *testing.T) {
	t.Parallel()

	srv := tezaurstest.NewServer(t)
	srv.Tokenize("es domāju", tezaurstest.EsDomajuTokens()...)
	srv.Raw("analyze", "jūra", 200, `[{"Skaitlis": "Vienskaitlis"}]`)

	j := &mockJournal{}
	svc := newTestService(tezaurs.NewProviderWithURL(srv.URL, newTestLogger()), j)

	tokens, err := svc.Tokenize(context.Background(), "es   domāju")
	require.NoError(t, err)
	assert.Equal(t, tezaurstest.EsDomajuTokens(), tokens)

	_, err = svc.Analyze(context.Background(), "jūra")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrDecode)

	_, err = svc.InflectPhrase(context.Background(), "nezināms")
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrTransport)

	entries := j.entries()
	require.Len(t, entries, 3)
	assert.Equal(t, domain.LookupOutcomeOK, entries[0].Outcome)
	assert.Equal(t, 2, entries[0].ResultCount)
	assert.Equal(t, domain.LookupOutcomeDecode, entries[1].Outcome)
	assert.Equal(t, domain.LookupOutcomeTransport, entries[2].Outcome)
}
