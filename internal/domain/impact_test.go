package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate_DefaultScenario(t *testing.T) {
	p := DefaultImpactParams()

	r, err := Estimate(p)
	require.NoError(t, err)

	assert.InDelta(t, 1.5913109e19, KineticEnergy(p.Diameter, p.Density, p.Velocity), 1e13)
	assert.InDelta(t, 3803.32, r.EnergyMT, 0.01)
	assert.InDelta(t, 6.9345, r.Magnitude, 0.0001)
	assert.InDelta(t, 1.88943, r.CraterDiamKm, 0.00001)
	assert.InDelta(t, 0.37789, r.CraterDepthKm, 0.00001)
	assert.InDelta(t, 61.2583, r.ThermalRadKm, 0.0001)
	assert.Equal(t, int64(518719), r.ThermalCasualties)
	assert.Equal(t, int64(466847), r.Fatalities)
	assert.False(t, r.IsWater)
}

func TestEstimate_Deterministic(t *testing.T) {
	p := ImpactParams{Lat: 35.2, Lon: 139.1, Diameter: 820, Velocity: 33, Angle: 60, Density: 8000, Surface: SurfaceLand}

	r1, err := Estimate(p)
	require.NoError(t, err)
	r2, err := Estimate(p)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}

func TestEstimate_WaterZeroesCrater(t *testing.T) {
	for _, p := range []ImpactParams{
		{Lat: 28.5, Lon: -80.5, Diameter: 370, Velocity: 20, Angle: 45, Density: 3000, Surface: SurfaceWater},
		{Lat: 0, Lon: -150, Diameter: 5000, Velocity: 72, Angle: 90, Density: 8000, Surface: SurfaceWater},
		{Lat: 40.7, Lon: -74, Diameter: 10, Velocity: 11, Angle: 15, Density: 1500, Surface: SurfaceWater},
	} {
		r, err := Estimate(p)
		require.NoError(t, err)
		assert.Zero(t, r.CraterDiamKm)
		assert.Zero(t, r.CraterDepthKm)
		assert.True(t, r.IsWater)
		assert.Zero(t, r.ThermalCasualties, "water has no population")
		assert.Zero(t, r.Fatalities)
		assert.Positive(t, r.ThermalRadKm, "thermal radius is independent of surface")
	}
}

func TestEstimate_WaterKeepsEnergyAndThermal(t *testing.T) {
	land := DefaultImpactParams()
	water := land
	water.Surface = SurfaceWater

	rl, err := Estimate(land)
	require.NoError(t, err)
	rw, err := Estimate(water)
	require.NoError(t, err)

	assert.Equal(t, rl.EnergyMT, rw.EnergyMT)
	assert.Equal(t, rl.Magnitude, rw.Magnitude)
	assert.Equal(t, rl.ThermalRadKm, rw.ThermalRadKm)
}

func TestEstimate_EnergyMonotonic(t *testing.T) {
	base := DefaultImpactParams()

	t.Run("diameter", func(t *testing.T) {
		prev := -1.0
		for _, d := range []float64{10, 50, 100, 370, 1000, 2500, 5000} {
			p := base
			p.Diameter = d
			r, err := Estimate(p)
			require.NoError(t, err)
			assert.Greater(t, r.EnergyMT, prev)
			prev = r.EnergyMT
		}
	})

	t.Run("velocity", func(t *testing.T) {
		prev := -1.0
		for _, v := range []float64{11, 15, 20, 30, 45, 60, 72} {
			p := base
			p.Velocity = v
			r, err := Estimate(p)
			require.NoError(t, err)
			assert.Greater(t, r.EnergyMT, prev)
			prev = r.EnergyMT
		}
	})
}

func TestEstimate_AngleDegeneracy(t *testing.T) {
	base := DefaultImpactParams()

	vertical := base
	vertical.Angle = 90
	rv, err := Estimate(vertical)
	require.NoError(t, err)

	for _, a := range []float64{1, 15, 30, 45, 60, 75, 89} {
		p := base
		p.Angle = a
		r, err := Estimate(p)
		require.NoError(t, err)
		assert.Less(t, r.CraterDiamKm, rv.CraterDiamKm, "angle %v", a)
	}

	prev := rv.CraterDiamKm
	for _, a := range []float64{10, 1, 0.1, 0.001, 1e-6} {
		p := base
		p.Angle = a
		r, err := Estimate(p)
		require.NoError(t, err)
		assert.Less(t, r.CraterDiamKm, prev)
		prev = r.CraterDiamKm
	}
	assert.Less(t, prev, 0.05, "crater should vanish as the angle approaches zero")
}

func TestCompute_ZeroAngleGraze(t *testing.T) {
	p := DefaultImpactParams()
	p.Angle = 0

	r := Compute(p)
	assert.Zero(t, r.CraterDiamKm)
	assert.Zero(t, r.CraterDepthKm)
	assert.InDelta(t, 3803.32, r.EnergyMT, 0.01, "energy does not depend on angle")
}

func TestEstimate_PracticalBounds(t *testing.T) {
	for _, d := range []float64{10, 5000} {
		for _, v := range []float64{11, 72} {
			for _, a := range []float64{15, 90} {
				for _, s := range []Surface{SurfaceLand, SurfaceWater} {
					p := ImpactParams{Lat: 28.5, Lon: -80.5, Diameter: d, Velocity: v, Angle: a, Density: 3000, Surface: s}
					r, err := Estimate(p)
					require.NoError(t, err)

					for name, f := range map[string]float64{
						"energy":    r.EnergyMT,
						"magnitude": r.Magnitude,
						"crater":    r.CraterDiamKm,
						"depth":     r.CraterDepthKm,
						"thermal":   r.ThermalRadKm,
					} {
						assert.False(t, math.IsNaN(f) || math.IsInf(f, 0), "%s not finite for %+v", name, p)
						assert.GreaterOrEqual(t, f, 0.0, "%s negative for %+v", name, p)
					}
					assert.GreaterOrEqual(t, r.ThermalCasualties, int64(0))
					assert.GreaterOrEqual(t, r.Fatalities, int64(0))
				}
			}
		}
	}
}

func TestEstimate_SmallImpactor(t *testing.T) {
	p := ImpactParams{Lat: 0, Lon: 0, Diameter: 10, Velocity: 11, Angle: 15, Density: 1500, Surface: SurfaceLand}

	r, err := Estimate(p)
	require.NoError(t, err)

	assert.InDelta(t, 0.011357, r.EnergyMT, 0.000001)
	assert.InDelta(t, 3.2512, r.Magnitude, 0.0001)
	assert.InDelta(t, 0.049323, r.CraterDiamKm, 0.000001)
	assert.Equal(t, int64(6), r.ThermalCasualties)
}

func TestEstimate_InvalidParams(t *testing.T) {
	p := DefaultImpactParams()
	p.Diameter = 0

	r, err := Estimate(p)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, ImpactResults{}, r)
}

func TestSeismicMagnitude(t *testing.T) {
	tests := []struct {
		name     string
		joules   float64
		expected float64
	}{
		{"zero energy clamps to zero", 0, 0},
		{"below unit seismic energy", 5e3, 0},
		{"threshold", math.Pow(10, 4.8) / seismicEfficiency, 0},
		{"1e19 J", 1e19, (15 - 4.8) / 1.5},
		{"1e22 J", 1e22, (18 - 4.8) / 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, seismicMagnitude(tt.joules), 1e-9)
		})
	}
}

func TestKineticEnergy(t *testing.T) {
	// 1 m sphere of water at 1 km/s.
	expected := 0.5 * (1000 * math.Pi / 6) * 1e6
	assert.InEpsilon(t, expected, KineticEnergy(1, 1000, 1), 1e-12)
}
