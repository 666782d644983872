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

// PgxStudentRepository reads the students roster projection. The projection
// is maintained by the roster service; this module never writes to it.
type PgxStudentRepository struct {
	BaseRepository
}

// newPgxStudentRepository creates a new repository for roster lookups.
func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

// FindStudentByID retrieves a student roster row by its ID.
func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `
		SELECT student_id, first_name, last_name, class, section, admission_number, parent_id
		FROM students
		WHERE student_id = $1;
	`
	var m models.Student
	err := r.Pool.QueryRow(ctx, query, studentID).Scan(
		&m.StudentID,
		&m.FirstName,
		&m.LastName,
		&m.ClassName,
		&m.Section,
		&m.AdmissionNumber,
		&m.ParentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find student by ID "+studentID, err)
	}

	domainStudent := mapping.ToDomainStudent(m)
	return &domainStudent, nil
}
