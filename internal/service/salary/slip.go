package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/apexhr/hrm-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// GenerateSlip computes one pay period's slip for an employee from the
// structure effective on the period end date and the supplied day counts.
// Regenerating is allowed only while the existing slip is still a draft; once
// it reaches GENERATED or later the slip is locked.
func (s *SalaryServiceImpl) GenerateSlip(ctx context.Context, req salary.GenerateSlipRequest) (salary.SlipResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SlipResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SlipResponse{}, err
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return salary.SlipResponse{}, fmt.Errorf("failed to parse period_start: %w", err)
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return salary.SlipResponse{}, fmt.Errorf("failed to parse period_end: %w", err)
	}

	if req.WorkingDays <= 0 {
		return salary.SlipResponse{}, salary.ErrZeroWorkingDays
	}

	var saved salary.Slip
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.slipRepo.GetByEmployeePeriodForUpdate(txCtx, req.EmployeeID, periodEnd, companyID)
		replaceDraft := false
		switch {
		case err == nil:
			if err := checkRegenerate(existing); err != nil {
				return err
			}
			replaceDraft = true
		case errors.Is(err, salary.ErrSlipNotFound):
			// No slip for this period yet.
		default:
			return err
		}

		structure, err := s.structureRepo.GetEffectiveOn(txCtx, req.EmployeeID, periodEnd, companyID)
		if err != nil {
			if errors.Is(err, salary.ErrStructureNotFound) {
				return fmt.Errorf("%w: employee %s on %s", salary.ErrNoActiveStructure, req.EmployeeID, req.PeriodEnd)
			}
			return err
		}

		slip, err := s.buildSlip(structure, req, periodStart, periodEnd)
		if err != nil {
			return err
		}
		slip.CompanyID = companyID

		if replaceDraft {
			slip.ID = existing.ID
			saved, err = s.slipRepo.ReplaceDraft(txCtx, slip)
		} else {
			saved, err = s.slipRepo.Insert(txCtx, slip)
		}
		return err
	})
	if err != nil {
		return salary.SlipResponse{}, err
	}

	s.logger.Info("salary slip generated",
		"slip_id", saved.ID,
		"employee_id", saved.EmployeeID,
		"period_end", req.PeriodEnd,
		"net_salary", saved.NetSalary.String())

	return mapToSlipResponse(saved), nil
}

// checkRegenerate enforces the slip lock: only drafts may be regenerated.
func checkRegenerate(existing salary.Slip) error {
	if existing.Status != salary.SlipStatusDraft {
		return fmt.Errorf("%w: slip %s is %s", salary.ErrSlipLocked, existing.ID, existing.Status)
	}
	return nil
}

// buildSlip does the arithmetic: per-day wage, loss of pay for absent days and
// totals, all against the structure's frozen component amounts.
func (s *SalaryServiceImpl) buildSlip(structure salary.Structure, req salary.GenerateSlipRequest, periodStart, periodEnd time.Time) (salary.Slip, error) {
	absentDays := req.WorkingDays - req.PresentDays - req.LeaveDays
	if absentDays < 0 {
		// Present plus leave exceeding working days is an upstream attendance
		// data problem; carry the negative through rather than hiding it.
		s.logger.Warn("present and leave days exceed working days",
			"employee_id", req.EmployeeID,
			"working_days", req.WorkingDays,
			"present_days", req.PresentDays,
			"leave_days", req.LeaveDays)
	}

	workingDays := decimal.NewFromInt(int64(req.WorkingDays))
	perDayWage := structure.WageAmount.Div(workingDays).Round(2)
	lossOfPay := perDayWage.Mul(decimal.NewFromInt(int64(absentDays))).Round(2)

	grossSalary := decimal.Zero
	totalDeductions := decimal.Zero
	for _, c := range structure.Components {
		if c.Category == salary.CategoryEarning {
			grossSalary = grossSalary.Add(c.Amount)
		} else {
			totalDeductions = totalDeductions.Add(c.Amount)
		}
	}
	netSalary := grossSalary.Sub(totalDeductions).Sub(lossOfPay)

	return salary.Slip{
		EmployeeID:      req.EmployeeID,
		StructureID:     structure.ID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		WorkingDays:     req.WorkingDays,
		PresentDays:     req.PresentDays,
		LeaveDays:       req.LeaveDays,
		AbsentDays:      absentDays,
		GrossSalary:     grossSalary,
		TotalDeductions: totalDeductions,
		LossOfPay:       lossOfPay,
		NetSalary:       netSalary,
		Snapshot: salary.SlipSnapshot{
			Components:  structure.Components,
			PerDayWage:  perDayWage,
			LossOfPay:   lossOfPay,
			WorkingDays: req.WorkingDays,
			PresentDays: req.PresentDays,
			LeaveDays:   req.LeaveDays,
			AbsentDays:  absentDays,
		},
		Status: salary.SlipStatusGenerated,
	}, nil
}

func (s *SalaryServiceImpl) GetSlip(ctx context.Context, id string) (salary.SlipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SlipResponse{}, err
	}

	slip, err := s.slipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SlipResponse{}, err
	}

	return mapToSlipResponse(slip), nil
}

func (s *SalaryServiceImpl) ListSlips(ctx context.Context, filter salary.SlipFilter) (salary.ListSlipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.ListSlipResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	slips, total, err := s.slipRepo.List(ctx, companyID, filter)
	if err != nil {
		return salary.ListSlipResponse{}, err
	}

	data := make([]salary.SlipResponse, 0, len(slips))
	for _, slip := range slips {
		data = append(data, mapToSlipResponse(slip))
	}

	return salary.ListSlipResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ApproveSlip moves a slip from GENERATED to APPROVED.
func (s *SalaryServiceImpl) ApproveSlip(ctx context.Context, id string) (salary.SlipResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SlipResponse{}, err
	}

	var saved salary.Slip
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		slip, err := s.slipRepo.GetByIDForUpdate(txCtx, id, companyID)
		if err != nil {
			return err
		}
		if slip.Status != salary.SlipStatusGenerated {
			return fmt.Errorf("%w: cannot approve slip in status %s", salary.ErrInvalidSlipTransition, slip.Status)
		}

		now := time.Now()
		slip.Status = salary.SlipStatusApproved
		slip.ApprovedBy = &userID
		slip.ApprovedAt = &now

		saved, err = s.slipRepo.UpdateStatus(txCtx, slip)
		return err
	})
	if err != nil {
		return salary.SlipResponse{}, err
	}

	return mapToSlipResponse(saved), nil
}

// MarkSlipPaid moves a slip from APPROVED to PAID and records how it was paid.
func (s *SalaryServiceImpl) MarkSlipPaid(ctx context.Context, req salary.MarkSlipPaidRequest) (salary.SlipResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SlipResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SlipResponse{}, err
	}

	var saved salary.Slip
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		slip, err := s.slipRepo.GetByIDForUpdate(txCtx, req.ID, companyID)
		if err != nil {
			return err
		}
		switch slip.Status {
		case salary.SlipStatusPaid:
			return salary.ErrSlipAlreadyPaid
		case salary.SlipStatusApproved:
		default:
			return fmt.Errorf("%w: cannot mark slip paid in status %s", salary.ErrInvalidSlipTransition, slip.Status)
		}

		now := time.Now()
		slip.Status = salary.SlipStatusPaid
		slip.PaidBy = &userID
		slip.PaidAt = &now
		slip.PaymentMode = &req.PaymentMode
		slip.PaymentReference = req.PaymentReference

		saved, err = s.slipRepo.UpdateStatus(txCtx, slip)
		return err
	})
	if err != nil {
		return salary.SlipResponse{}, err
	}

	s.logger.Info("salary slip marked paid",
		"slip_id", saved.ID,
		"payment_mode", req.PaymentMode)

	return mapToSlipResponse(saved), nil
}

// CancelSlip voids a slip that has not been paid out.
func (s *SalaryServiceImpl) CancelSlip(ctx context.Context, req salary.CancelSlipRequest) (salary.SlipResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SlipResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.SlipResponse{}, err
	}

	var saved salary.Slip
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		slip, err := s.slipRepo.GetByIDForUpdate(txCtx, req.ID, companyID)
		if err != nil {
			return err
		}
		switch slip.Status {
		case salary.SlipStatusPaid:
			return salary.ErrSlipAlreadyPaid
		case salary.SlipStatusCancelled:
			return fmt.Errorf("%w: slip is already cancelled", salary.ErrInvalidSlipTransition)
		}

		slip.Status = salary.SlipStatusCancelled
		slip.CancelReason = &req.Reason

		saved, err = s.slipRepo.UpdateStatus(txCtx, slip)
		return err
	})
	if err != nil {
		return salary.SlipResponse{}, err
	}

	return mapToSlipResponse(saved), nil
}
