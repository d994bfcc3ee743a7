package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/part"
)

// Scenario is a scripted build session with expectations.
// Steps are replayed in order against a fresh build.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Parts replaces the embedded reference catalog when present.
	// Keys are category names or aliases, as in a YAML catalog file.
	Parts map[string][]catalog.Record `yaml:"parts,omitempty"`

	// Language selects the message language ("en" or "ru"). Defaults to English.
	Language string `yaml:"language,omitempty"`

	// Dimensions makes the clearance rule compare lengths.
	Dimensions bool `yaml:"dimensions,omitempty"`

	// FormFactor enables the optional form-factor rule.
	FormFactor bool `yaml:"form_factor,omitempty"`

	// Steps is the session script.
	Steps []Step `yaml:"steps"`
}

// Step is exactly one of select, deselect or check.
type Step struct {
	Select   *SelectStep `yaml:"select,omitempty"`
	Deselect string      `yaml:"deselect,omitempty"`
	Check    *CheckStep  `yaml:"check,omitempty"`
}

// SelectStep picks a catalog component into its slot.
type SelectStep struct {
	Category string `yaml:"category"`
	ID       string `yaml:"id"`
}

// CheckStep evaluates the build. Unset fields are not checked.
type CheckStep struct {
	// Issues is the exact list of rule names expected, in order.
	// An empty list expects a compatible build.
	Issues *[]string `yaml:"issues,omitempty"`

	// Contains lists substrings that must appear in some issue message.
	Contains []string `yaml:"contains,omitempty"`

	TotalPrice *int64 `yaml:"total_price,omitempty"`
	TotalPower *int   `yaml:"total_power,omitempty"`
}

// Step operation names, as recorded in traces.
const (
	OpSelect   = "select"
	OpDeselect = "deselect"
	OpCheck    = "check"
)

// Op returns the operation name of s.
func (s Step) Op() string {
	switch {
	case s.Select != nil:
		return OpSelect
	case s.Deselect != "":
		return OpDeselect
	case s.Check != nil:
		return OpCheck
	}
	return ""
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "selct:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(index int, step Step) error {
	set := 0
	if step.Select != nil {
		set++
	}
	if step.Deselect != "" {
		set++
	}
	if step.Check != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one of select, deselect or check is required", index)
	}

	switch step.Op() {
	case OpSelect:
		if _, err := part.ParseCategory(step.Select.Category); err != nil {
			return fmt.Errorf("steps[%d].select: %w", index, err)
		}
		if step.Select.ID == "" {
			return fmt.Errorf("steps[%d].select: id is required", index)
		}
	case OpDeselect:
		if _, err := part.ParseCategory(step.Deselect); err != nil {
			return fmt.Errorf("steps[%d].deselect: %w", index, err)
		}
	}

	return nil
}
