package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/compat"
)

func ptr[T any](v T) *T { return &v }

func TestRun_PassingScenario(t *testing.T) {
	scenario := &Scenario{
		Name:        "am5",
		Description: "compatible build",
		Steps: []Step{
			{Select: &SelectStep{Category: "cpu", ID: "2"}},
			{Select: &SelectStep{Category: "mb", ID: "6"}},
			{Check: &CheckStep{Issues: ptr([]string{}), TotalPower: ptr(170)}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 3)
	assert.Equal(t, "processor", result.Trace[0].Category)
	assert.Equal(t, OpCheck, result.Trace[2].Op)
	assert.Equal(t, 170, result.Trace[2].Totals.PowerDraw)
}

func TestRun_FailedExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "expectations that do not hold",
		Steps: []Step{
			{Select: &SelectStep{Category: "cpu", ID: "1"}},
			{Select: &SelectStep{Category: "mb", ID: "6"}},
			{Check: &CheckStep{
				Issues:     ptr([]string{}),
				Contains:   []string{"DDR5"},
				TotalPrice: ptr(int64(1)),
				TotalPower: ptr(1),
			}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "issues = [socket]")
	assert.Contains(t, result.Errors[1], `"DDR5"`)
	assert.Contains(t, result.Errors[2], "total_price = 75980")
	assert.Contains(t, result.Errors[3], "total_power = 125")
}

func TestRun_UnknownPart(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing",
		Description: "part not in catalog",
		Steps: []Step{
			{Select: &SelectStep{Category: "cpu", ID: "404"}},
		},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRun_InvalidInlineParts(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_parts",
		Description: "duplicate inline ids",
		Parts: map[string][]catalog.Record{
			"cpu": {{ID: "x", Name: "a"}, {ID: "x", Name: "b"}},
		},
		Steps: []Step{{Deselect: "cpu"}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), catalog.ErrCodeDuplicateID)
}

func TestRun_FormFactorOption(t *testing.T) {
	scenario := &Scenario{
		Name:        "itx",
		Description: "ATX board in a Mini-ITX case",
		FormFactor:  true,
		Parts: map[string][]catalog.Record{
			"mb":   {{ID: "b", Name: "ATX board", FormFactor: "ATX"}},
			"case": {{ID: "c", Name: "ITX case", FormFactor: "Mini-ITX"}},
		},
		Steps: []Step{
			{Select: &SelectStep{Category: "mb", ID: "b"}},
			{Select: &SelectStep{Category: "case", ID: "c"}},
			{Check: &CheckStep{Issues: ptr([]string{compat.RuleFormFactor})}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestCheckExpectations_IssueOrderMatters(t *testing.T) {
	report := compat.Report{Issues: []compat.Issue{
		{Rule: compat.RuleSocket, Message: "a"},
		{Rule: compat.RuleClearance, Message: "b"},
	}}

	errs := checkExpectations(0, CheckStep{Issues: ptr([]string{compat.RuleClearance, compat.RuleSocket})}, report)
	assert.Len(t, errs, 1)

	errs = checkExpectations(0, CheckStep{Issues: ptr([]string{compat.RuleSocket, compat.RuleClearance})}, report)
	assert.Empty(t, errs)
}
