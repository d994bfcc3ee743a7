// Package part defines the purchasable components a build is assembled from.
//
// This package contains value types only. Every other internal package
// imports part; part imports nothing internal.
//
// Key design constraints:
//   - The category set is closed and ordered (see Categories)
//   - Power is carried in two unsigned fields selected by category:
//     PowerDrawWatts for consumers, PowerSupplyWattage for power supplies
//   - Prices are integer currency units, never floats
//   - JSON and YAML tags use snake_case
package part
