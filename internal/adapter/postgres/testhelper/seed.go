package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// ResetLookups empties the lookups table. Tests that read the whole journal
// call it first and must not run in parallel with each other.
func ResetLookups(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), `TRUNCATE lookups`); err != nil {
		t.Fatalf("testhelper: ResetLookups: %v", err)
	}
}

// SeedLookup inserts a successful analyze lookup created at the given time
// and returns it.
func SeedLookup(t *testing.T, pool *pgxpool.Pool, outcome domain.LookupOutcome, createdAt time.Time) domain.Lookup {
	t.Helper()

	l := domain.Lookup{
		ID:          uuid.New(),
		Operation:   domain.OperationAnalyze,
		Query:       "jūra-" + uniqueSuffix(),
		Outcome:     outcome,
		ResultCount: 2,
		RequestID:   "req-" + uniqueSuffix(),
		Duration:    15 * time.Millisecond,
		CreatedAt:   createdAt.UTC().Truncate(time.Microsecond),
	}
	if outcome != domain.LookupOutcomeOK {
		l.ResultCount = 0
		l.ErrorDetail = "analyze: " + string(outcome)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lookups (id, operation, query, outcome, result_count, error_detail, request_id, client, duration_us, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, string(l.Operation), l.Query, string(l.Outcome), l.ResultCount,
		l.ErrorDetail, l.RequestID, l.Client, l.Duration.Microseconds(), l.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLookup insert: %v", err)
	}
	return l
}
