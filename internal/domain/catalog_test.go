package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFromNEO(t *testing.T) {
	base := DefaultImpactParams()

	tests := []struct {
		name             string
		neo              NearEarthObject
		expectedDiameter float64
		expectedVelocity float64
	}{
		{
			name: "mean diameter and first approach velocity",
			neo: NearEarthObject{
				DiameterMinM: 290, DiameterMaxM: 651,
				CloseApproaches: []CloseApproach{{VelocityKmS: 12.6}, {VelocityKmS: 30}},
			},
			expectedDiameter: 471,
			expectedVelocity: 13,
		},
		{
			name:             "no approaches defaults velocity",
			neo:              NearEarthObject{DiameterMinM: 100, DiameterMaxM: 200},
			expectedDiameter: 150,
			expectedVelocity: 20,
		},
		{
			name: "zero velocity defaults",
			neo: NearEarthObject{
				DiameterMinM: 100, DiameterMaxM: 200,
				CloseApproaches: []CloseApproach{{VelocityKmS: 0.2}},
			},
			expectedDiameter: 150,
			expectedVelocity: 20,
		},
		{
			name:             "missing diameter keeps base",
			neo:              NearEarthObject{CloseApproaches: []CloseApproach{{VelocityKmS: 7.5}}},
			expectedDiameter: 370,
			expectedVelocity: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParamsFromNEO(base, tt.neo)
			assert.Equal(t, tt.expectedDiameter, p.Diameter)
			assert.Equal(t, tt.expectedVelocity, p.Velocity)

			// Everything else comes from base.
			assert.Equal(t, base.Lat, p.Lat)
			assert.Equal(t, base.Angle, p.Angle)
			assert.Equal(t, base.Density, p.Density)
			assert.Equal(t, base.Surface, p.Surface)
		})
	}
}

func TestSummarizeFeed(t *testing.T) {
	neos := []NearEarthObject{
		{ID: "3", Name: "C", DiameterMinM: 10, DiameterMaxM: 30, CloseApproaches: []CloseApproach{{Date: "2026-10-21", VelocityKmH: 40000, MissDistanceKm: 1e6}}},
		{ID: "1", Name: "A", DiameterMinM: 100, DiameterMaxM: 300, Hazardous: true, CloseApproaches: []CloseApproach{{Date: "2026-10-19", VelocityKmH: 50000, MissDistanceKm: 2e6}}},
		{ID: "2", Name: "B", CloseApproaches: nil},
		{ID: "0", Name: "Z", DiameterMinM: 1, DiameterMaxM: 1, CloseApproaches: []CloseApproach{{Date: "2026-10-19"}}},
	}

	rows := SummarizeFeed(neos, 0)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"0", "1", "3"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, AsteroidSummary{
		ID:                "1",
		Name:              "A",
		DistanceKm:        2e6,
		VelocityKmH:       50000,
		DiameterM:         200,
		Hazardous:         true,
		CloseApproachDate: "2026-10-19",
	}, rows[1])

	assert.Len(t, SummarizeFeed(neos, 2), 2)
	assert.Empty(t, SummarizeFeed(nil, 5))
}

func TestSummarizeFeed_DefaultLimit(t *testing.T) {
	neos := make([]NearEarthObject, 80)
	for i := range neos {
		neos[i] = NearEarthObject{ID: string(rune('a' + i%26)), CloseApproaches: []CloseApproach{{Date: "2026-10-19"}}}
	}
	assert.Len(t, SummarizeFeed(neos, 0), DefaultFeedLimit)
}

func TestFallbackAsteroids(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	rows := FallbackAsteroids(now)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024 AA1", rows[0].Name)
	assert.True(t, rows[0].Hazardous)
	assert.Equal(t, 150.0, rows[0].DiameterM)
	assert.Equal(t, "2024 BB2", rows[1].Name)
	assert.False(t, rows[1].Hazardous)
	assert.Equal(t, "2026-10-19T12:00:00Z", rows[1].CloseApproachDate)
}
