package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/attendance"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	logger         *slog.Logger
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, logger *slog.Logger) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

func getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := today()
	_, err = s.attendanceRepo.GetByEmployeeDate(ctx, req.EmployeeID, date, companyID)
	switch {
	case err == nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	case errors.Is(err, attendance.ErrAttendanceNotFound):
	default:
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now()
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Date:       date,
		CheckInAt:  &now,
		Status:     attendance.StatusPresent,
		Notes:      req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByEmployeeDate(ctx, req.EmployeeID, today(), companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if att.CheckOutAt != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	updated, err := s.attendanceRepo.SetCheckOut(ctx, att.ID, companyID, time.Now())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *AttendanceServiceImpl) GetPeriodSummary(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (attendance.PeriodSummaryResponse, error) {
	if periodStart.After(periodEnd) {
		return attendance.PeriodSummaryResponse{}, attendance.ErrInvalidPeriodBounds
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return attendance.PeriodSummaryResponse{}, err
	}

	summary, err := s.attendanceRepo.GetPeriodSummary(ctx, employeeID, periodStart, periodEnd, companyID)
	if err != nil {
		return attendance.PeriodSummaryResponse{}, err
	}

	return attendance.PeriodSummaryResponse{
		EmployeeID:  summary.EmployeeID,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.Format("2006-01-02"),
		WorkingDays: summary.WorkingDays,
		PresentDays: summary.PresentDays,
		LeaveDays:   summary.LeaveDays,
	}, nil
}

func mapToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	formatTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		str := t.Format(time.RFC3339)
		return &str
	}

	return attendance.AttendanceResponse{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format("2006-01-02"),
		CheckInAt:  formatTime(att.CheckInAt),
		CheckOutAt: formatTime(att.CheckOutAt),
		Status:     string(att.Status),
		Notes:      att.Notes,
	}
}
