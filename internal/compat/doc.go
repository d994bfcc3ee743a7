// Package compat evaluates a build snapshot against an ordered set of
// independent compatibility rules.
//
// Each rule is a pure predicate over a shared read-only Facts value (the
// snapshot plus its aggregated totals) and yields zero or one Issue. The
// engine runs every rule in declaration order and never short-circuits, so a
// build with several unrelated problems reports all of them in one pass.
//
// A detected incompatibility is a value, not an error. Evaluate is total: it
// returns a non-nil slice for every input, including an empty build.
//
// # Default rules
//
//   - socket: processor and motherboard sockets differ
//   - power-budget: selected draw exceeds 80% of the power supply rating
//   - clearance: a graphics card and an enclosure are both selected
//
// FormFactorRule is available but not registered by default.
//
// # Localisation
//
// Issue messages go through golang.org/x/text/message. English is the
// default; Russian is registered in the default catalog.
package compat
