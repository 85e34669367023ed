package domain

import "math"

const (
	cityInfluenceDegrees = 5.0
	equatorialDensity    = 50.0
	minLandDensity       = 5.0
)

// ReferenceCity anchors a local population-density peak.
type ReferenceCity struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Pop  float64 `json:"pop"` // peak density weight, people/km²
}

var referenceCities = [...]ReferenceCity{
	{Name: "New York", Lat: 40.7, Lon: -74.0, Pop: 800},
	{Name: "London", Lat: 51.5, Lon: -0.1, Pop: 1500},
	{Name: "Tokyo", Lat: 35.7, Lon: 139.7, Pop: 2000},
	{Name: "Shanghai", Lat: 31.2, Lon: 121.5, Pop: 1800},
	{Name: "Mumbai", Lat: 19.1, Lon: 72.9, Pop: 2500},
	{Name: "Cairo", Lat: 30.0, Lon: 31.2, Pop: 1000},
}

// DefaultReferenceCities returns a copy of the built-in reference city table.
func DefaultReferenceCities() []ReferenceCity {
	out := make([]ReferenceCity, len(referenceCities))
	copy(out, referenceCities[:])
	return out
}

// PopulationDensity estimates people per km² at the given point. Water is
// always 0; land never drops below 5.
func (e *Estimator) PopulationDensity(lat, lon float64, surface Surface) float64 {
	if surface == SurfaceWater {
		return 0
	}

	latFactor := math.Cos(degToRad(lat))

	var maxCityWeight float64
	for _, c := range e.cities {
		dist := math.Hypot(lat-c.Lat, lon-c.Lon)
		if dist < cityInfluenceDegrees {
			maxCityWeight = math.Max(maxCityWeight, c.Pop/(1+dist))
		}
	}

	return math.Max(minLandDensity, math.Round(latFactor*equatorialDensity+maxCityWeight))
}
