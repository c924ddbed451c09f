package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveServiceImpl struct {
	leaveRepo leave.LeaveRepository
	logger    *slog.Logger
}

func NewLeaveService(leaveRepo leave.LeaveRepository, logger *slog.Logger) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo: leaveRepo,
		logger:    logger,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end_date: %w", err)
	}

	overlap, err := s.leaveRepo.HasOverlap(ctx, req.EmployeeID, startDate, endDate, companyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if overlap {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveOverlap
	}

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request created",
		"leave_request_id", created.ID,
		"employee_id", created.EmployeeID,
		"total_days", created.TotalDays)

	return mapToResponse(created), nil
}

func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, id, leave.RequestStatusApproved)
}

func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, id, leave.RequestStatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.RequestStatus) (leave.LeaveRequestResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	req, err := s.leaveRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.Status != leave.RequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	updated, err := s.leaveRepo.UpdateStatus(ctx, id, companyID, status, userID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapToResponse(updated), nil
}

func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.leaveRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		result = append(result, mapToResponse(req))
	}

	return result, nil
}

func mapToResponse(req leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  req.StartDate.Format("2006-01-02"),
		EndDate:    req.EndDate.Format("2006-01-02"),
		TotalDays:  req.TotalDays,
		Reason:     req.Reason,
		Status:     string(req.Status),
	}
}
