package unverdad

import "fmt"

// ValidationError indicates a value does not match the type declared for its column.
type ValidationError struct {
	Column   string
	Expected ValueType
	Value    any
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("column %s expects %s, got %T (%v)", e.Column, e.Expected, e.Value, e.Value)
}

// InvalidOperatorError indicates an operator that cannot compare against NULL.
type InvalidOperatorError struct {
	Column   string
	Operator Operator
}

func (e InvalidOperatorError) Error() string {
	return fmt.Sprintf("column %s: operator %q cannot be used with NULL; use %q or %q", e.Column, e.Operator, EQ, NE)
}

// UsageError indicates structural misuse of a condition or namespace.
type UsageError struct {
	Op     string
	Reason string
}

func (e UsageError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func usageError(op, format string, args ...any) error {
	return UsageError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
