package salary

import "errors"

// Configuration / planning errors. These indicate a defective rule set, never a
// transient fault; callers get a 4xx and nothing is retried.
var (
	ErrEmptyRuleSet               = errors.New("no component rules supplied")
	ErrMultipleResidualComponents = errors.New("rule set has more than one residual component")
	ErrDuplicateComponentCode     = errors.New("duplicate component code in rule set")
	ErrUnknownBaseComponent       = errors.New("rule references a base component that is not in the rule set")
	ErrCyclicDependency           = errors.New("component rules form a dependency cycle")
	ErrResidualHasBase            = errors.New("residual component must not declare a base component")
)

// Evaluation errors.
var (
	ErrInvalidWage          = errors.New("wage must be greater than zero")
	ErrUnresolvedDependency = errors.New("base component has not been evaluated yet")
	ErrComponentExceedsWage = errors.New("component amount exceeds remaining wage")
	ErrNegativeResidual     = errors.New("residual component would be negative")
	ErrEarningsSumMismatch  = errors.New("sum of earning components does not equal wage")
	ErrMissingFixedValue    = errors.New("fixed component has no fixed value configured")
	ErrMissingPercentValue  = errors.New("percent component has no percent value configured")
	ErrMissingBaseComponent = errors.New("percent component has no base component configured")
)

// Structure / slip business-rule errors.
var (
	ErrComponentRuleNotFound          = errors.New("salary component rule not found")
	ErrComponentCodeExists            = errors.New("salary component code already exists")
	ErrStructureNotFound              = errors.New("salary structure not found")
	ErrNoActiveStructure              = errors.New("no salary structure effective for this period")
	ErrStructureEffectiveDateConflict = errors.New("new structure must take effect after the employee's active structure")
	ErrSlipNotFound                   = errors.New("salary slip not found")
	ErrSlipLocked                     = errors.New("slip already finalized for this period, cancel it first")
	ErrSlipAlreadyPaid                = errors.New("slip already paid, cannot modify")
	ErrInvalidSlipTransition          = errors.New("slip status does not allow this transition")
	ErrZeroWorkingDays                = errors.New("working days must be greater than zero")
)
