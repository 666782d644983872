package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	feeRepo := newPgxFeeRepository(dbPool)
	studentRepo := newPgxStudentRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo:   invoiceRepo,
		PaymentRepo:   paymentRepo,
		FeeRepo:       feeRepo,
		StudentRepo:   studentRepo,
		SequenceRepo:  sequenceRepo,
		ReportingRepo: reportingRepo,
	}
}
