package response

import (
	"errors"
	"net/http"

	"github.com/apexhr/hrm-backend-go/internal/domain/attendance"
	"github.com/apexhr/hrm-backend-go/internal/domain/auth"
	"github.com/apexhr/hrm-backend-go/internal/domain/employee"
	"github.com/apexhr/hrm-backend-go/internal/domain/leave"
	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/apexhr/hrm-backend-go/internal/domain/user"
	"github.com/apexhr/hrm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrEmployeeNoBaseWage):
		BadRequest(w, "Employee has no base wage configured", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in found for today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrInvalidPeriodBounds):
		BadRequest(w, "Period start must not be after period end", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrLeaveOverlap):
		Conflict(w, "Overlapping leave request exists")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)

	// Salary configuration errors: a defective rule set is always the
	// caller's problem, never a server fault.
	case errors.Is(err, salary.ErrEmptyRuleSet),
		errors.Is(err, salary.ErrMultipleResidualComponents),
		errors.Is(err, salary.ErrDuplicateComponentCode),
		errors.Is(err, salary.ErrUnknownBaseComponent),
		errors.Is(err, salary.ErrCyclicDependency),
		errors.Is(err, salary.ErrResidualHasBase),
		errors.Is(err, salary.ErrMissingFixedValue),
		errors.Is(err, salary.ErrMissingPercentValue),
		errors.Is(err, salary.ErrMissingBaseComponent):
		BadRequest(w, err.Error(), nil)

	// Salary evaluation errors
	case errors.Is(err, salary.ErrInvalidWage),
		errors.Is(err, salary.ErrUnresolvedDependency),
		errors.Is(err, salary.ErrComponentExceedsWage),
		errors.Is(err, salary.ErrNegativeResidual),
		errors.Is(err, salary.ErrEarningsSumMismatch),
		errors.Is(err, salary.ErrZeroWorkingDays):
		BadRequest(w, err.Error(), nil)

	// Salary business-rule errors
	case errors.Is(err, salary.ErrComponentRuleNotFound):
		NotFound(w, "Salary component rule not found")
	case errors.Is(err, salary.ErrComponentCodeExists):
		Conflict(w, "Salary component code already exists")
	case errors.Is(err, salary.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, salary.ErrNoActiveStructure):
		NotFound(w, "No salary structure effective for this period")
	case errors.Is(err, salary.ErrStructureEffectiveDateConflict):
		Conflict(w, err.Error())
	case errors.Is(err, salary.ErrSlipNotFound):
		NotFound(w, "Salary slip not found")
	case errors.Is(err, salary.ErrSlipLocked):
		Conflict(w, err.Error())
	case errors.Is(err, salary.ErrSlipAlreadyPaid):
		Conflict(w, "Slip already paid, cannot modify")
	case errors.Is(err, salary.ErrInvalidSlipTransition):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
