package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	"github.com/schoolfees/school_fees_app/internal/models"
	"github.com/schoolfees/school_fees_app/internal/utils/mapping"
)

type PgxFeeRepository struct {
	BaseRepository
}

// newPgxFeeRepository creates a new repository for fee structure data.
func newPgxFeeRepository(pool *pgxpool.Pool) portsrepo.FeeRepositoryFacade {
	return &PgxFeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FeeRepositoryFacade = (*PgxFeeRepository)(nil)

const feeColumns = `fee_id, name, description, amount, frequency, applicable_classes, academic_year,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

// scanFee reads one fees row in feeColumns order.
func scanFee(row pgx.Row) (models.Fee, error) {
	var m models.Fee
	var description, academicYear *string
	err := row.Scan(
		&m.FeeID,
		&m.Name,
		&description,
		&m.Amount,
		&m.Frequency,
		&m.ApplicableClasses,
		&academicYear,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if description != nil {
		m.Description = *description
	}
	if academicYear != nil {
		m.AcademicYear = *academicYear
	}
	return m, err
}

// SaveFee inserts a fee structure entry.
func (r *PgxFeeRepository) SaveFee(ctx context.Context, fee domain.Fee) error {
	modelFee := mapping.ToModelFee(fee)
	query := `
		INSERT INTO fees (
			fee_id, name, description, amount, frequency, applicable_classes, academic_year, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelFee.FeeID,
		modelFee.Name,
		nullableString(modelFee.Description),
		modelFee.Amount,
		modelFee.Frequency,
		modelFee.ApplicableClasses,
		nullableString(modelFee.AcademicYear),
		modelFee.IsActive,
		modelFee.CreatedAt,
		modelFee.CreatedBy,
		modelFee.LastUpdatedAt,
		modelFee.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fee "+modelFee.FeeID, err)
	}
	return nil
}

// UpdateFee persists changes to a fee structure entry.
func (r *PgxFeeRepository) UpdateFee(ctx context.Context, fee domain.Fee) error {
	modelFee := mapping.ToModelFee(fee)
	query := `
		UPDATE fees SET
			name = $2, description = $3, amount = $4, frequency = $5, applicable_classes = $6,
			academic_year = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE fee_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelFee.FeeID,
		modelFee.Name,
		nullableString(modelFee.Description),
		modelFee.Amount,
		modelFee.Frequency,
		modelFee.ApplicableClasses,
		nullableString(modelFee.AcademicYear),
		modelFee.IsActive,
		modelFee.LastUpdatedAt,
		modelFee.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fee "+modelFee.FeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindFeeByID retrieves a fee by its ID.
func (r *PgxFeeRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.Fee, error) {
	query := `SELECT ` + feeColumns + ` FROM fees WHERE fee_id = $1;`

	modelFee, err := scanFee(r.Pool.QueryRow(ctx, query, feeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fee by ID "+feeID, err)
	}

	domainFee := mapping.ToDomainFee(modelFee)
	return &domainFee, nil
}

// ListFees retrieves fee entries ordered by name.
func (r *PgxFeeRepository) ListFees(ctx context.Context, activeOnly bool) ([]domain.Fee, error) {
	query := `SELECT ` + feeColumns + ` FROM fees`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fees", err)
	}
	defer rows.Close()

	fees := make([]domain.Fee, 0)
	for rows.Next() {
		modelFee, err := scanFee(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fee row", err)
		}
		fees = append(fees, mapping.ToDomainFee(modelFee))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fee rows", err)
	}

	return fees, nil
}
