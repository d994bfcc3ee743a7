package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/rigcheck/internal/part"
)

func TestReferencePartsAreValid(t *testing.T) {
	parts := []part.Component{
		IntelI9(), Ryzen9(), RTX4090(), StrixZ790(), TomahawkX670E(),
		TridentZ5(), Samsung980Pro(), RM1000x(), FocusGX850(), MeshifyC(),
		Consumer(part.GraphicsCard, "g", 300), Supply("p", 500),
	}
	for _, p := range parts {
		assert.Empty(t, p.Validate(), p.Name)
	}
}

func TestReferencePartsAreFreshCopies(t *testing.T) {
	a := IntelI9()
	a.Specs["cores"] = "1"
	assert.Equal(t, "24", IntelI9().Specs["cores"])
}
