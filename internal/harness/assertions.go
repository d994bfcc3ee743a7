package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/rigcheck/internal/compat"
)

// checkExpectations compares a report with a check step and returns one
// message per mismatch.
func checkExpectations(index int, want CheckStep, got compat.Report) []string {
	var errs []string

	if want.Issues != nil {
		names := make([]string, len(got.Issues))
		for i, issue := range got.Issues {
			names[i] = issue.Rule
		}
		if !equalStrings(*want.Issues, names) {
			errs = append(errs, fmt.Sprintf("steps[%d].check: issues = %v, expected %v", index, names, *want.Issues))
		}
	}

	for _, sub := range want.Contains {
		if !anyMessageContains(got.Issues, sub) {
			errs = append(errs, fmt.Sprintf("steps[%d].check: no issue message contains %q", index, sub))
		}
	}

	if want.TotalPrice != nil && *want.TotalPrice != got.Totals.Price {
		errs = append(errs, fmt.Sprintf("steps[%d].check: total_price = %d, expected %d", index, got.Totals.Price, *want.TotalPrice))
	}

	if want.TotalPower != nil && *want.TotalPower != got.Totals.PowerDraw {
		errs = append(errs, fmt.Sprintf("steps[%d].check: total_power = %d, expected %d", index, got.Totals.PowerDraw, *want.TotalPower))
	}

	return errs
}

func anyMessageContains(issues []compat.Issue, sub string) bool {
	for _, issue := range issues {
		if strings.Contains(issue.Message, sub) {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
