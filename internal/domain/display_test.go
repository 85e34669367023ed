package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResults(t *testing.T) {
	r, err := Estimate(DefaultImpactParams())
	require.NoError(t, err)

	assert.Equal(t, Display{
		EnergyMT:      "3803.3",
		Magnitude:     "6.9",
		CraterDiamKm:  "1.89",
		CraterDepthKm: "0.38",
		ThermalRadKm:  "61.3",
	}, FormatResults(r))
}

func TestDensityClass(t *testing.T) {
	tests := []struct {
		density  float64
		expected string
	}{
		{8000, "dense iron"},
		{4001, "dense iron"},
		{4000, "rocky"},
		{3000, "rocky"},
		{2001, "rocky"},
		{2000, "icy"},
		{1500, "icy"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DensityClass(tt.density), "density %v", tt.density)
	}
}

func TestSummary(t *testing.T) {
	t.Run("land", func(t *testing.T) {
		p := DefaultImpactParams()
		r, err := Estimate(p)
		require.NoError(t, err)

		assert.Equal(t,
			"A 370m rocky asteroid strikes at 20 km/s. It releases 3803.3 Megatons of energy. It excavates a crater 1.89 km wide.",
			Summary(p, r))
	})

	t.Run("water", func(t *testing.T) {
		p := DefaultImpactParams()
		p.Surface = SurfaceWater
		p.Density = 8000
		r, err := Estimate(p)
		require.NoError(t, err)

		s := Summary(p, r)
		assert.Contains(t, s, "A 370m dense iron asteroid")
		assert.Contains(t, s, "tsunamis")
		assert.NotContains(t, s, "crater")
	})
}

func TestImpactZones(t *testing.T) {
	t.Run("land has thermal and crater", func(t *testing.T) {
		p := DefaultImpactParams()
		r, err := Estimate(p)
		require.NoError(t, err)

		zones := ImpactZones(p, r)
		require.Len(t, zones, 2)
		assert.Equal(t, ZoneThermal, zones[0].Kind)
		assert.InDelta(t, 61258.28, zones[0].RadiusM, 0.01)
		assert.Equal(t, ZoneCrater, zones[1].Kind)
		assert.InDelta(t, 944.71, zones[1].RadiusM, 0.01)
		assert.Equal(t, Geo{Lat: 28.5, Lon: -80.5}, zones[1].Center)
	})

	t.Run("water has thermal only", func(t *testing.T) {
		p := DefaultImpactParams()
		p.Surface = SurfaceWater
		r, err := Estimate(p)
		require.NoError(t, err)

		zones := ImpactZones(p, r)
		require.Len(t, zones, 1)
		assert.Equal(t, ZoneThermal, zones[0].Kind)
	})

	t.Run("grazing land impact has no crater", func(t *testing.T) {
		p := DefaultImpactParams()
		p.Angle = 0

		zones := ImpactZones(p, Compute(p))
		require.Len(t, zones, 1)
	})
}
