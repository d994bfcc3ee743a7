// Package harness replays scripted build sessions and checks the results.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: socket_mismatch
//	description: "Intel processor on an AM5 motherboard"
//	language: en          # optional, "en" or "ru"
//	dimensions: false     # optional, clearance compares lengths
//	form_factor: false    # optional, enable the form-factor rule
//	parts:                # optional, replaces the reference catalog
//	  cpu:
//	    - {id: "x1", name: "Test CPU", price: 100, power_draw_watts: 65, socket: AM4}
//	steps:
//	  - select: {category: cpu, id: "1"}
//	  - select: {category: mb, id: "6"}
//	  - check:
//	      issues: [socket]
//	      contains: ["LGA1700", "AM5"]
//	      total_price: 75980
//	      total_power: 125
//	  - deselect: cpu
//	  - check:
//	      issues: []
//
// # Expectations
//
// A check step evaluates the current build with the compatibility engine.
// Each expectation field is optional:
//
//   - issues: exact rule names in evaluation order ([] means compatible)
//   - contains: substrings that must appear in some issue message
//   - total_price, total_power: the aggregated totals
//
// # Golden Traces
//
// Every step appends a TraceEvent (operation, totals and, for checks, the
// issues). RunWithGolden compares the trace with
// testdata/golden/<name>.golden using goldie.
package harness
