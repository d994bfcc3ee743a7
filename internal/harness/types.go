package harness

import (
	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/compat"
)

// TraceEvent records one replayed step and the build it left behind.
type TraceEvent struct {
	Step     int            `json:"step"`
	Op       string         `json:"op"`
	Category string         `json:"category,omitempty"`
	ID       string         `json:"id,omitempty"`
	Totals   build.Totals   `json:"totals"`
	Issues   []compat.Issue `json:"issues,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all check expectations match.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
