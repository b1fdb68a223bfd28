package morphology

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
)

type morphologyProvider interface {
	Analyze(ctx context.Context, word string) ([]domain.AnalyzedWord, error)
	Tokenize(ctx context.Context, sentence string) ([]domain.Token, error)
	NormalizePhrase(ctx context.Context, sentence string) (string, error)
	SuitableParadigms(ctx context.Context, word string) ([]domain.Paradigm, error)
	InflectPhrase(ctx context.Context, sentence string) ([]domain.Inflection, error)
}

type lookupJournal interface {
	Record(ctx context.Context, l domain.Lookup) error
	Recent(ctx context.Context, limit int) ([]domain.Lookup, error)
	CountByOutcome(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error)
}

const (
	// maxQueryRunes bounds a word or sentence after normalisation.
	maxQueryRunes = 1000

	defaultStatsWindow = 24 * time.Hour
	journalTimeout     = 2 * time.Second
)

// Service exposes the morphology operations and keeps the lookup journal.
// The journal is write-only from the lookup path: results are always fetched
// from the provider.
type Service struct {
	log         *slog.Logger
	provider    morphologyProvider
	journal     lookupJournal
	recentLimit int
	now         func() time.Time
}

// NewService creates a morphology service. A nil journal disables journaling.
func NewService(
	logger *slog.Logger,
	provider morphologyProvider,
	journal lookupJournal,
	recentLimit int,
) *Service {
	if journal == nil {
		journal = NopJournal{}
	}
	if recentLimit < 1 {
		recentLimit = 1
	}
	return &Service{
		log:         logger.With("service", "morphology"),
		provider:    provider,
		journal:     journal,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

// NopJournal discards lookups. It is used when no database is configured.
type NopJournal struct{}

func (NopJournal) Record(context.Context, domain.Lookup) error { return nil }

func (NopJournal) Recent(context.Context, int) ([]domain.Lookup, error) {
	return []domain.Lookup{}, nil
}

func (NopJournal) CountByOutcome(context.Context, time.Time) ([]domain.OutcomeCount, error) {
	return nil, nil
}
