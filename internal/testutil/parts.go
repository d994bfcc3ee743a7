package testutil

import "github.com/roach88/rigcheck/internal/part"

// Reference parts mirroring the storefront's sample catalog.
// Each call returns a fresh copy so tests may mutate the result.

func IntelI9() part.Component {
	return part.Component{
		ID: "1", Name: "Intel Core i9-13900K", Category: part.Processor,
		Price: 45990, PowerDrawWatts: 125, Socket: "LGA1700",
		Specs: map[string]string{"cores": "24", "threads": "32"},
	}
}

func Ryzen9() part.Component {
	return part.Component{
		ID: "2", Name: "AMD Ryzen 9 7900X", Category: part.Processor,
		Price: 39990, PowerDrawWatts: 170, Socket: "AM5",
		Specs: map[string]string{"cores": "12", "threads": "24"},
	}
}

func RTX4090() part.Component {
	return part.Component{
		ID: "3", Name: "RTX 4090", Category: part.GraphicsCard,
		Price: 159990, PowerDrawWatts: 450,
		Specs: map[string]string{"memory": "24GB GDDR6X", "length": "304mm"},
	}
}

func StrixZ790() part.Component {
	return part.Component{
		ID: "5", Name: "ASUS ROG Strix Z790-E", Category: part.Motherboard,
		Price: 34990, Socket: "LGA1700", FormFactor: "ATX",
		Specs: map[string]string{"chipset": "Z790"},
	}
}

func TomahawkX670E() part.Component {
	return part.Component{
		ID: "6", Name: "MSI MAG X670E Tomahawk", Category: part.Motherboard,
		Price: 29990, Socket: "AM5", FormFactor: "ATX",
		Specs: map[string]string{"chipset": "X670E"},
	}
}

func TridentZ5() part.Component {
	return part.Component{
		ID: "7", Name: "G.SKILL Trident Z5 32GB", Category: part.Memory,
		Price: 12990, PowerDrawWatts: 10,
	}
}

func Samsung980Pro() part.Component {
	return part.Component{
		ID: "8", Name: "Samsung 980 PRO 2TB", Category: part.Storage,
		Price: 15990, PowerDrawWatts: 7,
	}
}

func RM1000x() part.Component {
	return part.Component{
		ID: "9", Name: "Corsair RM1000x", Category: part.PowerSupply,
		Price: 16990, PowerSupplyWattage: 1000,
	}
}

func FocusGX850() part.Component {
	return part.Component{
		ID: "10", Name: "Seasonic Focus GX-850", Category: part.PowerSupply,
		Price: 12990, PowerSupplyWattage: 850,
	}
}

func MeshifyC() part.Component {
	return part.Component{
		ID: "11", Name: "Fractal Design Meshify C", Category: part.Enclosure,
		Price: 8990, FormFactor: "ATX",
		Specs: map[string]string{"type": "Mid Tower", "maxGpuLength": "315mm"},
	}
}

// Consumer returns a component in cat that draws exactly watts.
func Consumer(cat part.Category, id string, watts int) part.Component {
	return part.Component{ID: id, Name: id, Category: cat, PowerDrawWatts: watts}
}

// Supply returns a power supply rated for wattage.
func Supply(id string, wattage int) part.Component {
	return part.Component{ID: id, Name: id, Category: part.PowerSupply, PowerSupplyWattage: wattage}
}
