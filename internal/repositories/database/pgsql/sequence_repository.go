package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
)

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so sequence
// allocation can run standalone or inside a caller's transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document number sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// nextSequenceValue atomically increments and returns the counter for
// (prefix, year). The upsert makes first use and increment a single
// statement, so concurrent callers can never observe the same value.
func nextSequenceValue(ctx context.Context, q rowQuerier, prefix string, year int) (int64, error) {
	query := `
		INSERT INTO number_sequences (prefix, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year) DO UPDATE SET
			last_value = number_sequences.last_value + 1
		RETURNING last_value;
	`
	var value int64
	if err := q.QueryRow(ctx, query, prefix, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to allocate sequence %s-%d: %w", prefix, year, err)
	}
	return value, nil
}

// NextValue increments and returns the sequence for (prefix, year).
func (r *PgxSequenceRepository) NextValue(ctx context.Context, prefix string, year int) (int64, error) {
	return nextSequenceValue(ctx, r.Pool, prefix, year)
}
