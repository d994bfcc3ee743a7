package compat

import (
	"golang.org/x/text/message"

	"github.com/roach88/rigcheck/internal/build"
)

// Rule names.
const (
	RuleSocket      = "socket"
	RulePowerBudget = "power-budget"
	RuleClearance   = "clearance"
	RuleFormFactor  = "form-factor"
)

// Issue is one detected incompatibility.
type Issue struct {
	Rule    string `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}

// Facts is the read-only context every rule evaluates.
type Facts struct {
	Build   build.Snapshot
	Totals  build.Totals
	printer *message.Printer
}

// NewFacts derives totals from s and binds the message printer.
func NewFacts(s build.Snapshot, p *message.Printer) Facts {
	return Facts{Build: s, Totals: build.Aggregate(s), printer: p}
}

// Issue renders a localised message for rule.
func (f Facts) Issue(rule, key string, args ...any) Issue {
	p := f.printer
	if p == nil {
		p = message.NewPrinter(defaultLanguage)
	}
	return Issue{Rule: rule, Message: p.Sprintf(key, args...)}
}

// Rule is a pure predicate over Facts producing at most one issue.
type Rule interface {
	Name() string
	Check(f Facts) (Issue, bool)
}

// RuleFunc adapts a function into a Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(f Facts) (Issue, bool)
}

// NewRule returns a Rule named name backed by fn.
func NewRule(name string, fn func(f Facts) (Issue, bool)) RuleFunc {
	return RuleFunc{RuleName: name, Fn: fn}
}

func (r RuleFunc) Name() string { return r.RuleName }

func (r RuleFunc) Check(f Facts) (Issue, bool) { return r.Fn(f) }
