package services

import (
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.PaymentRepo, repos.StudentRepo, repos.SequenceRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo)
	container.Fee = NewFeeService(repos.FeeRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
