package domain

import (
	"fmt"
	"time"
)

// The engine distinguishes two fatal error classes. Input errors mean
// the caller supplied something unusable; config errors mean the tax
// year reference table does not cover the requested dates. Everything
// else (zero denominators, negative intermediates) is clamped locally
// and never surfaces as an error.

// InputError reports malformed or inconsistent user input. Field names
// use the canonical (post-alias) spelling.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// InvalidPeriodError reports an accounting period whose end date
// precedes its start date.
type InvalidPeriodError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid accounting period: end %s is before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// NoApplicableTaxYearError reports a period with no overlap in the tax
// year reference table. This is a configuration gap, not a user error:
// the table needs an entry for the date range.
type NoApplicableTaxYearError struct {
	Start time.Time
	End   time.Time
}

func (e *NoApplicableTaxYearError) Error() string {
	return fmt.Sprintf("no tax year reference data covers %s to %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}
