package services

import (
	"context"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/dto"
)

// FeeSvcFacade manages fee structure reference data. All mutations are
// admin only; fee reads are available to any authenticated caller.
type FeeSvcFacade interface {
	CreateFee(ctx context.Context, req dto.CreateFeeRequest, actor domain.Actor) (*domain.Fee, error)
	UpdateFee(ctx context.Context, feeID string, req dto.UpdateFeeRequest, actor domain.Actor) (*domain.Fee, error)
	GetFeeByID(ctx context.Context, feeID string) (*domain.Fee, error)
	ListFees(ctx context.Context, params dto.ListFeesParams) ([]domain.Fee, error)
	// DeactivateFee soft-disables a fee so it stops prefilling new invoices.
	DeactivateFee(ctx context.Context, feeID string, actor domain.Actor) error
}
