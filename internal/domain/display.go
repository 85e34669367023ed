package domain

import (
	"fmt"
	"strconv"
)

// Display holds fixed-decimal renderings of ImpactResults for presentation.
type Display struct {
	EnergyMT      string `json:"energy_mt"`
	Magnitude     string `json:"magnitude"`
	CraterDiamKm  string `json:"crater_diam_km"`
	CraterDepthKm string `json:"crater_depth_km"`
	ThermalRadKm  string `json:"thermal_rad_km"`
}

// FormatResults renders energy, magnitude and thermal radius to one decimal
// place and crater dimensions to two.
func FormatResults(r ImpactResults) Display {
	return Display{
		EnergyMT:      fixed(r.EnergyMT, 1),
		Magnitude:     fixed(r.Magnitude, 1),
		CraterDiamKm:  fixed(r.CraterDiamKm, 2),
		CraterDepthKm: fixed(r.CraterDepthKm, 2),
		ThermalRadKm:  fixed(r.ThermalRadKm, 1),
	}
}

func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// DensityClass labels an impactor by bulk density.
func DensityClass(density float64) string {
	switch {
	case density > 4000:
		return "dense iron"
	case density > 2000:
		return "rocky"
	default:
		return "icy"
	}
}

// Summary is a one-paragraph narrative of the impact.
func Summary(p ImpactParams, r ImpactResults) string {
	d := FormatResults(r)
	s := fmt.Sprintf("A %sm %s asteroid strikes at %s km/s. It releases %s Megatons of energy. ",
		strconv.FormatFloat(p.Diameter, 'f', -1, 64),
		DensityClass(p.Density),
		strconv.FormatFloat(p.Velocity, 'f', -1, 64),
		d.EnergyMT,
	)
	if r.IsWater {
		return s + "The ocean impact generates massive tsunamis and vaporizes vast amounts of water."
	}
	return s + fmt.Sprintf("It excavates a crater %s km wide.", d.CraterDiamKm)
}

// Zone kinds drawn on the map.
const (
	ZoneThermal = "thermal"
	ZoneCrater  = "crater"
)

// ImpactZone is a circular map overlay centred on the impact point.
type ImpactZone struct {
	Kind    string  `json:"kind"`
	Center  Geo     `json:"center"`
	RadiusM float64 `json:"radius_m"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ImpactZones returns the thermal burn circle and, for land impacts that
// leave a crater, the crater rim circle.
func ImpactZones(p ImpactParams, r ImpactResults) []ImpactZone {
	center := Geo{Lat: p.Lat, Lon: p.Lon}
	zones := []ImpactZone{
		{Kind: ZoneThermal, Center: center, RadiusM: r.ThermalRadKm * 1000},
	}
	if !r.IsWater && r.CraterDiamKm > 0 {
		zones = append(zones, ImpactZone{Kind: ZoneCrater, Center: center, RadiusM: r.CraterDiamKm * 1000 / 2})
	}
	return zones
}
