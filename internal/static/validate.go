package static

import (
	"fmt"
	"strings"

	"github.com/John-Robertt/policygen-go/internal/model"
)

type ValidateError struct {
	AppError model.AppError
	Cause    error
}

func (e *ValidateError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *ValidateError) Unwrap() error { return e.Cause }

// ValidateRules checks the rule table against the emitted groups: every
// action must reference an emitted group or a built-in outbound, and exactly
// one MATCH rule must exist, in last position. A violation here is a defect
// in the static tables, not in the subscription input.
func ValidateRules(rules []string, groups []model.Group) error {
	names := make(map[string]struct{}, len(groups)+2)
	for _, g := range groups {
		names[g.Name] = struct{}{}
	}
	names[model.Direct] = struct{}{}
	names[model.Reject] = struct{}{}

	matchCount := 0
	matchIndex := -1
	for i, line := range rules {
		action, ok := ruleAction(line)
		if !ok {
			return &ValidateError{
				AppError: model.AppError{
					Code:    "RULE_TABLE_ERROR",
					Message: "规则行不合法",
					Stage:   "validate_static",
					Line:    i + 1,
					Snippet: line,
				},
			}
		}
		if strings.HasPrefix(line, "MATCH,") {
			matchCount++
			matchIndex = i
		}
		if _, ok := names[action]; !ok {
			return &ValidateError{
				AppError: model.AppError{
					Code:    "REFERENCE_NOT_FOUND",
					Message: fmt.Sprintf("规则 ACTION 引用不存在：%s", action),
					Stage:   "validate_static",
					Line:    i + 1,
					Snippet: line,
				},
			}
		}
	}

	if matchCount != 1 {
		return &ValidateError{
			AppError: model.AppError{
				Code:    "RULE_TABLE_ERROR",
				Message: fmt.Sprintf("兜底规则 MATCH 数量不合法（got=%d, want=1）", matchCount),
				Stage:   "validate_static",
			},
		}
	}
	if matchIndex != len(rules)-1 {
		return &ValidateError{
			AppError: model.AppError{
				Code:    "RULE_TABLE_ERROR",
				Message: "兜底规则 MATCH 必须是最后一条",
				Stage:   "validate_static",
			},
		}
	}
	return nil
}

// ruleAction extracts the action field of a classical rule line: the last
// comma-separated field, or the one before a trailing no-resolve marker.
// Logical rule lines (AND/OR/NOT) nest parentheses, so fields inside
// brackets are not split.
func ruleAction(line string) (string, bool) {
	fields := splitTopLevel(line)
	if len(fields) < 2 {
		return "", false
	}
	last := strings.TrimSpace(fields[len(fields)-1])
	if last == "no-resolve" {
		if len(fields) < 3 {
			return "", false
		}
		last = strings.TrimSpace(fields[len(fields)-2])
	}
	if last == "" {
		return "", false
	}
	return last, true
}

func splitTopLevel(line string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range line {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, line[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, line[start:])
	return out
}
