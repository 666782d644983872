package repositories

import (
	"context"
	"time"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
)

// DateWindow is an optional inclusive [start, end] filter.
type DateWindow struct {
	Start *time.Time
	End   *time.Time
}

// IsSet reports whether both ends of the window were supplied.
func (w DateWindow) IsSet() bool {
	return w.Start != nil && w.End != nil
}

// SequenceRepositoryFacade allocates display-number sequences atomically,
// scoped per prefix and year. Replaces the unsafe count-rows-plus-one scheme.
type SequenceRepositoryFacade interface {
	// NextValue increments and returns the sequence for (prefix, year),
	// creating the row at 1 on first use.
	NextValue(ctx context.Context, prefix string, year int) (int64, error)
}

// StudentRepositoryFacade reads the external roster projection.
type StudentRepositoryFacade interface {
	// FindStudentByID returns the roster row or ErrNotFound.
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
}

// FeeRepositoryFacade provides persistence for fee reference data.
type FeeRepositoryFacade interface {
	SaveFee(ctx context.Context, fee domain.Fee) error
	UpdateFee(ctx context.Context, fee domain.Fee) error
	FindFeeByID(ctx context.Context, feeID string) (*domain.Fee, error)
	ListFees(ctx context.Context, activeOnly bool) ([]domain.Fee, error)
}

// RepositoryProvider bundles all repositories for service wiring.
type RepositoryProvider struct {
	InvoiceRepo   InvoiceRepositoryFacade
	PaymentRepo   PaymentRepositoryFacade
	FeeRepo       FeeRepositoryFacade
	StudentRepo   StudentRepositoryFacade
	SequenceRepo  SequenceRepositoryFacade
	ReportingRepo ReportingRepository
}
