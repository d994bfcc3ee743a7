package harness

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/roach88/rigcheck/internal/build"
	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/compat"
	"github.com/roach88/rigcheck/internal/part"
)

// Harness replays one scenario.
type Harness struct {
	catalog *catalog.Catalog
	engine  *compat.Engine
	lang    language.Tag
	state   *build.State
}

// Run executes a scenario and returns the result.
//
// Each scenario replays against a fresh build. A step that cannot be
// executed (unknown part, invalid inline catalog) is an error; failed
// expectations are recorded in the Result.
func Run(scenario *Scenario) (*Result, error) {
	h, err := newHarness(scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.execute(i, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return result, nil
}

func newHarness(s *Scenario) (*Harness, error) {
	cat := catalog.Default()
	if len(s.Parts) > 0 {
		parts, err := inlineParts(s.Parts)
		if err != nil {
			return nil, fmt.Errorf("inline parts: %w", err)
		}
		if errs := catalog.Validate(parts); len(errs) > 0 {
			return nil, fmt.Errorf("inline parts: %w", &catalog.InvalidError{Errors: errs})
		}
		cat = catalog.New(parts)
	}

	opts := compat.RuleOptions{CompareDimensions: s.Dimensions, FormFactor: s.FormFactor}
	return &Harness{
		catalog: cat,
		engine:  compat.New(compat.WithRules(opts.Rules()...)),
		lang:    compat.ParseLanguage(s.Language),
		state:   build.NewState(),
	}, nil
}

func inlineParts(recs map[string][]catalog.Record) (map[part.Category][]part.Component, error) {
	out := make(map[part.Category][]part.Component, len(recs))
	for key, list := range recs {
		cat, err := part.ParseCategory(key)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			c, err := r.Component(cat)
			if err != nil {
				return nil, err
			}
			out[cat] = append(out[cat], c)
		}
	}
	return out, nil
}

// execute applies one step and appends its trace event.
func (h *Harness) execute(index int, step Step, result *Result) error {
	event := TraceEvent{Step: index, Op: step.Op()}

	switch event.Op {
	case OpSelect:
		cat, err := part.ParseCategory(step.Select.Category)
		if err != nil {
			return err
		}
		comp, err := h.catalog.Lookup(cat, step.Select.ID)
		if err != nil {
			return err
		}
		if err := h.state.Select(comp); err != nil {
			return err
		}
		event.Category, event.ID = string(cat), comp.ID

	case OpDeselect:
		cat, err := part.ParseCategory(step.Deselect)
		if err != nil {
			return err
		}
		h.state.Deselect(cat)
		event.Category = string(cat)

	case OpCheck:
		report := h.engine.CheckIn(h.state.Snapshot(), h.lang)
		event.Issues = report.Issues
		for _, msg := range checkExpectations(index, *step.Check, report) {
			result.AddError(msg)
		}

	default:
		return fmt.Errorf("empty step")
	}

	event.Totals = build.Aggregate(h.state.Snapshot())
	result.Trace = append(result.Trace, event)
	return nil
}
