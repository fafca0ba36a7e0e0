package conform

import "fmt"

// ErrUnknownFunction is returned when a mapping document names a function
// outside the closed set (spec.md §4.1 "Function library (closed set the
// engine must support)").
type ErrUnknownFunction struct {
	Table, Field, Function string
}

func (e *ErrUnknownFunction) Error() string {
	return fmt.Sprintf("conform: table %q field %q: unknown function %q", e.Table, e.Field, e.Function)
}

// ErrInvalidCast is returned when `direct`'s cast_type names anything
// outside {str, int, float}.
type ErrInvalidCast struct {
	Table, Field, CastType string
}

func (e *ErrInvalidCast) Error() string {
	return fmt.Sprintf("conform: table %q field %q: invalid cast type %q", e.Table, e.Field, e.CastType)
}

// ErrMalformedMapping is returned for any mapping document entry that
// cannot be normalized into Unmapped/Literal/Direct/Chain form.
type ErrMalformedMapping struct {
	Table, Field, Reason string
}

func (e *ErrMalformedMapping) Error() string {
	return fmt.Sprintf("conform: table %q field %q: malformed mapping: %s", e.Table, e.Field, e.Reason)
}

// ErrInvalidCondition is returned when a conditional_values condition
// template fails to parse under the closed operator grammar (spec.md §9:
// "reduced to a closed operator set ... do not embed a general expression
// interpreter").
type ErrInvalidCondition struct {
	Table, Field, Expr string
	Cause              error
}

func (e *ErrInvalidCondition) Error() string {
	return fmt.Sprintf("conform: table %q field %q: invalid condition %q: %v", e.Table, e.Field, e.Expr, e.Cause)
}

func (e *ErrInvalidCondition) Unwrap() error { return e.Cause }

// ErrInvalidRegex is returned when a regex_find/regex_sub pattern fails
// to compile.
type ErrInvalidRegex struct {
	Table, Field, Pattern string
	Cause                 error
}

func (e *ErrInvalidRegex) Error() string {
	return fmt.Sprintf("conform: table %q field %q: invalid regex %q: %v", e.Table, e.Field, e.Pattern, e.Cause)
}

func (e *ErrInvalidRegex) Unwrap() error { return e.Cause }
