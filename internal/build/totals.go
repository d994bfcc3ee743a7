package build

// Totals are the values derived from a snapshot. They are never stored.
type Totals struct {
	Price     int64 `json:"total_price" yaml:"total_price"`
	PowerDraw int   `json:"total_power" yaml:"total_power"`
}

// Aggregate sums price over every selected component and power draw over
// consuming components. A power supply contributes its price but no load.
func Aggregate(s Snapshot) Totals {
	var t Totals
	for _, c := range s.Components() {
		t.Price += c.Price
		if c.Category.ConsumesPower() && c.PowerDrawWatts > 0 {
			t.PowerDraw += c.PowerDrawWatts
		}
	}
	return t
}
