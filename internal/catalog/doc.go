// Package catalog supplies the read-only reference set of components a build
// is assembled from.
//
// Catalogs are decoded from CUE, YAML or JSON documents of the form
//
//	catalog: {
//		processor: [
//			{id: "1", name: "Intel Core i9-13900K", price: 45990, power_draw_watts: 125, socket: "LGA1700"},
//		]
//		"power-supply": [
//			{id: "9", name: "Corsair RM1000x", price: 16990, power_supply_wattage: 1000},
//		]
//	}
//
// Category keys accept canonical names and short aliases (cpu, gpu, psu, case).
// The legacy signed power_consumption field is accepted and converted by
// category (negative values on a power supply are its rating).
//
// A Catalog is never mutated after construction. Holder shares one between
// goroutines and swaps it atomically as a whole.
package catalog
