package compat

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/rigcheck/internal/build"
)

var defaultLanguage = language.English

// Engine runs an ordered list of rules against build snapshots.
//
// Thread-safety: Evaluate may be called concurrently. Use and Remove take a
// write lock and are intended for setup, not per-request changes.
type Engine struct {
	mu    sync.RWMutex
	rules []Rule
	lang  language.Tag
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguage sets the language issue messages are rendered in.
func WithLanguage(tag language.Tag) Option {
	return func(e *Engine) { e.lang = tag }
}

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = append([]Rule(nil), rules...) }
}

// New creates an engine with DefaultRules unless WithRules is given.
func New(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules(), lang: defaultLanguage}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Language returns the engine's default message language.
func (e *Engine) Language() language.Tag {
	return e.lang
}

// Use appends r to the end of the evaluation order.
// Rule names must be unique within an engine.
func (e *Engine) Use(r Rule) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.rules {
		if existing.Name() == r.Name() {
			return fmt.Errorf("rule %q already registered", r.Name())
		}
	}
	e.rules = append(e.rules, r)
	return nil
}

// Remove drops the rule named name. It reports whether a rule was removed.
func (e *Engine) Remove(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, r := range e.rules {
		if r.Name() == name {
			e.rules = append(e.rules[:i:i], e.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Rules lists rule names in evaluation order.
func (e *Engine) Rules() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name()
	}
	return names
}

// Evaluate runs every rule against s in declaration order and returns the
// issues they produced. The result is never nil.
func (e *Engine) Evaluate(s build.Snapshot) []Issue {
	return e.EvaluateIn(s, e.lang)
}

// EvaluateIn is Evaluate with messages rendered in lang.
func (e *Engine) EvaluateIn(s build.Snapshot, lang language.Tag) []Issue {
	e.mu.RLock()
	rules := append([]Rule(nil), e.rules...)
	e.mu.RUnlock()

	facts := NewFacts(s, message.NewPrinter(lang))
	issues := make([]Issue, 0, len(rules))
	for _, r := range rules {
		if issue, ok := r.Check(facts); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// Report bundles an evaluation with the totals it was computed from.
type Report struct {
	Valid  bool         `json:"valid"`
	Issues []Issue      `json:"issues"`
	Totals build.Totals `json:"totals"`
}

// Check evaluates s and returns a Report.
func (e *Engine) Check(s build.Snapshot) Report {
	return e.CheckIn(s, e.lang)
}

// CheckIn is Check with messages rendered in lang.
func (e *Engine) CheckIn(s build.Snapshot, lang language.Tag) Report {
	issues := e.EvaluateIn(s, lang)
	return Report{
		Valid:  len(issues) == 0,
		Issues: issues,
		Totals: build.Aggregate(s),
	}
}
