package salary

import (
	"fmt"
	"sort"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
)

// BuildPlan orders component rules into a deterministic evaluation sequence.
//
// The dependency graph has an edge from each percent-of-base rule to the rule
// producing its base component (the literal WAGE base has no edge). Ordering is
// a Kahn topological sort; among rules whose dependencies are satisfied, lower
// display_order wins, then code. The residual rule, if any, always evaluates
// last. Pure function over its input.
func BuildPlan(rules []salary.ComponentRule) (salary.EvaluationPlan, error) {
	if len(rules) == 0 {
		return salary.EvaluationPlan{}, salary.ErrEmptyRuleSet
	}

	byCode := make(map[string]salary.ComponentRule, len(rules))
	var residual *salary.ComponentRule
	var nonResidual []salary.ComponentRule

	for _, rule := range rules {
		if _, dup := byCode[rule.Code]; dup {
			return salary.EvaluationPlan{}, fmt.Errorf("%w: %s", salary.ErrDuplicateComponentCode, rule.Code)
		}
		byCode[rule.Code] = rule

		if rule.Mode == salary.ModeResidual {
			if residual != nil {
				return salary.EvaluationPlan{}, fmt.Errorf("%w: %s and %s", salary.ErrMultipleResidualComponents, residual.Code, rule.Code)
			}
			if rule.BaseComponentCode != nil {
				return salary.EvaluationPlan{}, fmt.Errorf("%w: %s", salary.ErrResidualHasBase, rule.Code)
			}
			r := rule
			residual = &r
			continue
		}
		nonResidual = append(nonResidual, rule)
	}

	indegree := make(map[string]int, len(nonResidual))
	dependents := make(map[string][]string)

	for _, rule := range nonResidual {
		indegree[rule.Code] += 0

		if rule.Mode != salary.ModePercentOfBase {
			continue
		}
		if rule.BaseComponentCode == nil {
			return salary.EvaluationPlan{}, fmt.Errorf("%w: %s", salary.ErrMissingBaseComponent, rule.Code)
		}
		base := *rule.BaseComponentCode
		if base == salary.WageBaseCode {
			continue
		}
		baseRule, ok := byCode[base]
		if !ok {
			return salary.EvaluationPlan{}, fmt.Errorf("%w: %s references %s", salary.ErrUnknownBaseComponent, rule.Code, base)
		}
		if baseRule.Mode == salary.ModeResidual {
			// The residual is only known after everything else, so a rule
			// based on it can never be ordered before it.
			return salary.EvaluationPlan{}, fmt.Errorf("%w: %s depends on residual component %s", salary.ErrCyclicDependency, rule.Code, base)
		}
		indegree[rule.Code]++
		dependents[base] = append(dependents[base], rule.Code)
	}

	var ready []string
	for code, deg := range indegree {
		if deg == 0 {
			ready = append(ready, code)
		}
	}

	less := func(a, b string) bool {
		ra, rb := byCode[a], byCode[b]
		if ra.DisplayOrder != rb.DisplayOrder {
			return ra.DisplayOrder < rb.DisplayOrder
		}
		return ra.Code < rb.Code
	}
	sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })

	ordered := make([]salary.ComponentRule, 0, len(nonResidual))
	for len(ready) > 0 {
		code := ready[0]
		ready = ready[1:]
		ordered = append(ordered, byCode[code])

		for _, dep := range dependents[code] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
		sort.Slice(ready, func(i, j int) bool { return less(ready[i], ready[j]) })
	}

	if len(ordered) != len(nonResidual) {
		var stuck []string
		for code, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, code)
			}
		}
		sort.Strings(stuck)
		return salary.EvaluationPlan{}, fmt.Errorf("%w: %v", salary.ErrCyclicDependency, stuck)
	}

	return salary.EvaluationPlan{Ordered: ordered, Residual: residual}, nil
}
