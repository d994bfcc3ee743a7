package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rigcheck/internal/part"
	"github.com/roach88/rigcheck/internal/testutil"
)

func sample() *Catalog {
	return New(map[part.Category][]part.Component{
		part.Processor:   {testutil.IntelI9(), testutil.Ryzen9()},
		part.PowerSupply: {testutil.RM1000x()},
	})
}

func TestCatalogCategoriesCanonicalOrder(t *testing.T) {
	c := sample()
	assert.Equal(t, []part.Category{part.Processor, part.PowerSupply}, c.Categories())
	assert.Equal(t, 3, c.Len())
}

func TestCatalogNewDropsUnknownCategory(t *testing.T) {
	c := New(map[part.Category][]part.Component{
		"toaster":      {{ID: "x", Category: "toaster"}},
		part.Processor: {testutil.IntelI9()},
	})
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, c.Parts("toaster"))
}

func TestCatalogLookup(t *testing.T) {
	c := sample()

	got, err := c.Lookup(part.Processor, "2")
	require.NoError(t, err)
	assert.Equal(t, "AM5", got.Socket)

	_, err = c.Lookup(part.Processor, "9")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.Lookup(part.Memory, "1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogPartsAreCopies(t *testing.T) {
	c := New(map[part.Category][]part.Component{
		part.GraphicsCard: {testutil.RTX4090()},
	})

	list := c.Parts(part.GraphicsCard)
	list[0].Name = "changed"
	list[0].Specs["length"] = "1mm"

	again := c.Parts(part.GraphicsCard)
	assert.Equal(t, "RTX 4090", again[0].Name)
	assert.Equal(t, "304mm", again[0].Specs["length"])
}

func TestCatalogSearch(t *testing.T) {
	c := sample()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2"}},
		{"ryzen", []string{"2"}},
		{"  INTEL  ", []string{"1"}},
		{"core i9", []string{"1"}},
		{"threadripper", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var ids []string
			for _, p := range c.Search(part.Processor, tt.query) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCatalogSearchUnicodeFolding(t *testing.T) {
	c := New(map[part.Category][]part.Component{
		part.Enclosure: {{ID: "c1", Name: "Корпус Straße", Category: part.Enclosure}},
	})

	assert.Len(t, c.Search(part.Enclosure, "корпус"), 1)
	assert.Len(t, c.Search(part.Enclosure, "STRASSE"), 1)
}

func TestHolderSwap(t *testing.T) {
	first := sample()
	h := NewHolder(first)
	assert.Same(t, first, h.Load())

	second := Default()
	prev := h.Swap(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, h.Load())
}
