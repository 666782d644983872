package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
)

// feeService manages fee structure reference data used to pre-fill invoice
// line items.
type feeService struct {
	BaseService
	feeRepo portsrepo.FeeRepositoryFacade
}

// NewFeeService creates a new FeeService.
func NewFeeService(feeRepo portsrepo.FeeRepositoryFacade) portssvc.FeeSvcFacade {
	return &feeService{feeRepo: feeRepo}
}

var _ portssvc.FeeSvcFacade = (*feeService)(nil)

// CreateFee persists a new fee structure entry.
func (s *feeService) CreateFee(ctx context.Context, req dto.CreateFeeRequest, actor domain.Actor) (*domain.Fee, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: fee amount cannot be negative", apperrors.ErrValidation)
	}
	frequency := domain.FeeFrequency(req.Frequency)
	if !domain.ValidFeeFrequency(frequency) {
		return nil, fmt.Errorf("%w: unrecognised fee frequency %q", apperrors.ErrValidation, req.Frequency)
	}

	now := time.Now().UTC()
	fee := domain.Fee{
		FeeID:             uuid.NewString(),
		Name:              req.Name,
		Description:       req.Description,
		Amount:            req.Amount,
		Frequency:         frequency,
		ApplicableClasses: req.ApplicableClasses,
		AcademicYear:      req.AcademicYear,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.feeRepo.SaveFee(ctx, fee); err != nil {
		s.LogError(ctx, err, "Failed to save fee", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save fee: %w", err)
	}

	s.LogInfo(ctx, "Fee created", slog.String("fee_id", fee.FeeID), slog.String("name", fee.Name))
	return &fee, nil
}

// UpdateFee applies a partial edit to a fee structure entry.
func (s *feeService) UpdateFee(ctx context.Context, feeID string, req dto.UpdateFeeRequest, actor domain.Actor) (*domain.Fee, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fee for update", slog.String("fee_id", feeID))
		}
		return nil, err
	}

	updated := false
	if req.Name != nil {
		fee.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		fee.Description = *req.Description
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: fee amount cannot be negative", apperrors.ErrValidation)
		}
		fee.Amount = *req.Amount
		updated = true
	}
	if req.Frequency != nil {
		frequency := domain.FeeFrequency(*req.Frequency)
		if !domain.ValidFeeFrequency(frequency) {
			return nil, fmt.Errorf("%w: unrecognised fee frequency %q", apperrors.ErrValidation, *req.Frequency)
		}
		fee.Frequency = frequency
		updated = true
	}
	if req.ApplicableClasses != nil {
		fee.ApplicableClasses = *req.ApplicableClasses
		updated = true
	}
	if req.AcademicYear != nil {
		fee.AcademicYear = *req.AcademicYear
		updated = true
	}
	if req.IsActive != nil {
		fee.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields provided for fee update", slog.String("fee_id", feeID))
		return fee, nil
	}

	fee.LastUpdatedAt = time.Now().UTC()
	fee.LastUpdatedBy = actor.UserID

	if err := s.feeRepo.UpdateFee(ctx, *fee); err != nil {
		s.LogError(ctx, err, "Failed to save fee update", slog.String("fee_id", feeID))
		return nil, fmt.Errorf("failed to save fee update: %w", err)
	}

	s.LogInfo(ctx, "Fee updated", slog.String("fee_id", feeID))
	return fee, nil
}

// GetFeeByID returns a fee structure entry.
func (s *feeService) GetFeeByID(ctx context.Context, feeID string) (*domain.Fee, error) {
	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fee", slog.String("fee_id", feeID))
		}
		return nil, err
	}
	return fee, nil
}

// ListFees returns fee entries, optionally restricted to active ones and to
// a class they apply to.
func (s *feeService) ListFees(ctx context.Context, params dto.ListFeesParams) ([]domain.Fee, error) {
	fees, err := s.feeRepo.ListFees(ctx, params.ActiveOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fees")
		return nil, fmt.Errorf("failed to retrieve fees: %w", err)
	}

	if params.Class == "" {
		return fees, nil
	}
	filtered := make([]domain.Fee, 0, len(fees))
	for i := range fees {
		if fees[i].AppliesToClass(params.Class) {
			filtered = append(filtered, fees[i])
		}
	}
	return filtered, nil
}

// DeactivateFee soft-disables a fee so it stops prefilling new invoices.
// Existing invoice items keep their reference.
func (s *feeService) DeactivateFee(ctx context.Context, feeID string, actor domain.Actor) error {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return err
	}

	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		return err
	}
	if !fee.IsActive {
		return nil
	}

	fee.IsActive = false
	fee.LastUpdatedAt = time.Now().UTC()
	fee.LastUpdatedBy = actor.UserID

	if err := s.feeRepo.UpdateFee(ctx, *fee); err != nil {
		s.LogError(ctx, err, "Failed to deactivate fee", slog.String("fee_id", feeID))
		return fmt.Errorf("failed to deactivate fee: %w", err)
	}

	s.LogInfo(ctx, "Fee deactivated", slog.String("fee_id", feeID))
	return nil
}
