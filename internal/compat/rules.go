package compat

import (
	"strconv"
	"strings"
)

// Power headroom: draw may use at most maxLoadPercent of the supply rating;
// the recommendation adds recommendPercent on top of the current draw.
const (
	maxLoadPercent   = 80
	recommendPercent = 120
)

// DefaultRules returns the standard rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		SocketRule{},
		PowerBudgetRule{},
		ClearanceRule{},
	}
}

// RuleOptions toggles the optional behaviour of the built-in rules.
type RuleOptions struct {
	CompareDimensions bool // clearance compares lengths instead of presence
	FormFactor        bool // append FormFactorRule
}

// Rules returns DefaultRules adjusted by o.
func (o RuleOptions) Rules() []Rule {
	rules := []Rule{
		SocketRule{},
		PowerBudgetRule{},
		ClearanceRule{CompareDimensions: o.CompareDimensions},
	}
	if o.FormFactor {
		rules = append(rules, FormFactorRule{})
	}
	return rules
}

// SocketRule fires when the processor and motherboard sockets are both
// known and differ. Comparison is exact and case-sensitive.
type SocketRule struct{}

func (SocketRule) Name() string { return RuleSocket }

func (SocketRule) Check(f Facts) (Issue, bool) {
	cpu, mb := f.Build.Processor, f.Build.Motherboard
	if cpu == nil || mb == nil {
		return Issue{}, false
	}
	if cpu.Socket == "" || mb.Socket == "" || cpu.Socket == mb.Socket {
		return Issue{}, false
	}
	return f.Issue(RuleSocket, msgSocketMismatch, cpu.Socket, mb.Socket), true
}

// PowerBudgetRule fires when the total draw exceeds 80% of the selected
// power supply's rating. Without a power supply there is no reference
// capacity and the rule does not apply.
type PowerBudgetRule struct{}

func (PowerBudgetRule) Name() string { return RulePowerBudget }

func (PowerBudgetRule) Check(f Facts) (Issue, bool) {
	psu := f.Build.PowerSupply
	if psu == nil {
		return Issue{}, false
	}
	capacity := psu.PowerSupplyWattage
	draw := f.Totals.PowerDraw
	if capacity <= 0 || draw*100 <= capacity*maxLoadPercent {
		return Issue{}, false
	}
	return f.Issue(RulePowerBudget, msgPowerBudget,
		strconv.Itoa(RecommendedWattage(draw)), strconv.Itoa(capacity)), true
}

// RecommendedWattage returns ceil(draw * 1.2) using integer arithmetic.
func RecommendedWattage(draw int) int {
	if draw <= 0 {
		return 0
	}
	return (draw*recommendPercent + 99) / 100
}

// ClearanceRule cautions that a graphics card may not fit the enclosure.
//
// By default it is a presence check: it fires whenever both are selected.
// With CompareDimensions set, a graphics card "length" spec is compared to the
// enclosure "maxGpuLength" spec (millimetres); if either is missing or
// unparseable the presence caution is used instead.
type ClearanceRule struct {
	CompareDimensions bool
}

func (ClearanceRule) Name() string { return RuleClearance }

func (r ClearanceRule) Check(f Facts) (Issue, bool) {
	gpu, enc := f.Build.GraphicsCard, f.Build.Enclosure
	if gpu == nil || enc == nil {
		return Issue{}, false
	}
	if r.CompareDimensions {
		length, okLen := millimetres(gpu.Specs["length"])
		limit, okLimit := millimetres(enc.Specs["maxGpuLength"])
		if okLen && okLimit {
			if length <= limit {
				return Issue{}, false
			}
			return f.Issue(RuleClearance, msgClearanceLength, strconv.Itoa(length), strconv.Itoa(limit)), true
		}
	}
	return f.Issue(RuleClearance, msgClearance), true
}

// millimetres parses values such as "315mm", "315 mm" or "315".
func millimetres(s string) (int, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "mm"))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// formFactorSize ranks board and enclosure size classes, smallest first.
var formFactorSize = map[string]int{
	"mini-itx":  1,
	"itx":       1,
	"micro-atx": 2,
	"matx":      2,
	"m-atx":     2,
	"atx":       3,
	"e-atx":     4,
	"eatx":      4,
}

// FormFactorRule fires when the motherboard is a larger size class than
// the enclosure accepts. Unknown form factors never fire.
type FormFactorRule struct{}

func (FormFactorRule) Name() string { return RuleFormFactor }

func (FormFactorRule) Check(f Facts) (Issue, bool) {
	mb, enc := f.Build.Motherboard, f.Build.Enclosure
	if mb == nil || enc == nil {
		return Issue{}, false
	}
	board, okBoard := formFactorSize[strings.ToLower(strings.TrimSpace(mb.FormFactor))]
	chassis, okChassis := formFactorSize[strings.ToLower(strings.TrimSpace(enc.FormFactor))]
	if !okBoard || !okChassis || board <= chassis {
		return Issue{}, false
	}
	return f.Issue(RuleFormFactor, msgFormFactor, mb.FormFactor, enc.FormFactor), true
}
