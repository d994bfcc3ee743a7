package part

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"processor", Processor},
		{"graphics-card", GraphicsCard},
		{"  Motherboard ", Motherboard},
		{"cpu", Processor},
		{"GPU", GraphicsCard},
		{"ram", Memory},
		{"psu", PowerSupply},
		{"case", Enclosure},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	for _, in := range []string{"cooler", "ssd", "hdd", ""} {
		_, err := ParseCategory(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrUnknownCategory), in)
		assert.Contains(t, err.Error(), fmt.Sprintf("%q", in))
	}
}

func TestCategories_OrderAndValidity(t *testing.T) {
	require.Len(t, Categories, 7)
	for i, c := range Categories {
		assert.True(t, c.Valid(), c)
		assert.Equal(t, i, c.Index())
	}
	assert.Equal(t, -1, Category("cooler").Index())
	assert.False(t, Category("").Valid())
}

func TestConsumesPower(t *testing.T) {
	assert.True(t, Processor.ConsumesPower())
	assert.True(t, Enclosure.ConsumesPower())
	assert.False(t, PowerSupply.ConsumesPower())
	assert.False(t, Category("cooler").ConsumesPower())
}
