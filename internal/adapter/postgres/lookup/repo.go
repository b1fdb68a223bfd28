// Package lookup implements the lookup journal using PostgreSQL.
// The journal is append-only; rows are never updated and only removed by
// retention.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/tezaurs-gateway/internal/adapter/postgres"
	"github.com/heartmarshall/tezaurs-gateway/internal/domain"
)

const table = "lookups"

var columns = []string{
	"id", "operation", "query", "outcome", "result_count",
	"error_detail", "request_id", "client", "duration_us", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides lookup journal persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a lookup repository. q is usually a *pgxpool.Pool.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Record appends one lookup to the journal.
func (r *Repo) Record(ctx context.Context, l domain.Lookup) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(
			l.ID,
			string(l.Operation),
			pgText(l.Query),
			string(l.Outcome),
			l.ResultCount,
			pgText(l.ErrorDetail),
			pgText(l.RequestID),
			pgText(l.Client),
			l.Duration.Microseconds(),
			l.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert lookup: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "lookup", l.ID)
	}
	return nil
}

// pgText makes s storable in a TEXT column: invalid UTF-8 and NUL bytes,
// which PostgreSQL rejects, become U+FFFD.
func pgText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.ReplaceAll(s, "\x00", "\uFFFD")
}

// DeleteBefore removes lookups created before cutoff and returns how many
// rows were deleted. It is the journal's only deletion path: retention.
func (r *Repo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete lookups: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete lookups: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Recent returns the newest lookups, newest first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.Lookup, error) {
	if limit < 1 {
		return []domain.Lookup{}, nil
	}

	query, args, err := psql.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select lookups: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select lookups: %w", err)
	}

	lookups, err := pgx.CollectRows(rows, scanLookup)
	if err != nil {
		return nil, fmt.Errorf("scan lookups: %w", err)
	}
	return lookups, nil
}

// CountByOutcome counts lookups created at or after since, grouped by outcome.
// Outcomes with no lookups are absent from the result.
func (r *Repo) CountByOutcome(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error) {
	query, args, err := psql.Select("outcome", "count(*)").
		From(table).
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("outcome").
		OrderBy("outcome").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count lookups: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count lookups: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OutcomeCount, error) {
		var (
			outcome string
			n       int64
		)
		if err := row.Scan(&outcome, &n); err != nil {
			return domain.OutcomeCount{}, err
		}
		return domain.OutcomeCount{Outcome: domain.LookupOutcome(outcome), Count: int(n)}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan lookup counts: %w", err)
	}
	return counts, nil
}

func scanLookup(row pgx.CollectableRow) (domain.Lookup, error) {
	var (
		l          domain.Lookup
		operation  string
		outcome    string
		durationUS int64
	)
	err := row.Scan(
		&l.ID,
		&operation,
		&l.Query,
		&outcome,
		&l.ResultCount,
		&l.ErrorDetail,
		&l.RequestID,
		&l.Client,
		&durationUS,
		&l.CreatedAt,
	)
	if err != nil {
		return domain.Lookup{}, err
	}

	l.Operation = domain.Operation(operation)
	l.Outcome = domain.LookupOutcome(outcome)
	l.Duration = time.Duration(durationUS) * time.Microsecond
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}
