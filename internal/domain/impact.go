package domain

import "math"

// Surface is the target surface type at the impact point.
type Surface string

const (
	SurfaceLand  Surface = "land"
	SurfaceWater Surface = "water"
)

// Approach is the direction the impactor arrives from. It only affects the
// visual trajectory, never the physics.
type Approach string

const (
	ApproachTop   Approach = "top"
	ApproachNorth Approach = "north"
	ApproachEast  Approach = "east"
	ApproachSouth Approach = "south"
	ApproachWest  Approach = "west"
)

// Model constants.
const (
	joulesPerMegaton   = 4.184e15
	landTargetDensity  = 2500.0
	waterTargetDensity = 1000.0

	craterCoefficient      = 1.16
	craterDiameterExponent = 0.78
	craterVelocityExponent = 0.44
	craterDepthRatio       = 0.2

	seismicEfficiency = 1e-4
	seismicOffset     = 4.8
	seismicScale      = 1.5

	thermalExponent    = 0.45
	thermalCoefficient = 1.5

	lethalFraction     = 0.9
	waterFatalityRatio = 0.5
)

// ImpactParams describes a single impact scenario.
type ImpactParams struct {
	Lat      float64  `json:"lat" yaml:"lat" validate:"finite,gte=-90,lte=90"`
	Lon      float64  `json:"lon" yaml:"lon" validate:"finite,gte=-180,lte=180"`
	Diameter float64  `json:"diameter" yaml:"diameter" validate:"finite,gt=0"` // metres
	Velocity float64  `json:"velocity" yaml:"velocity" validate:"finite,gt=0"` // km/s
	Angle    float64  `json:"angle" yaml:"angle" validate:"finite,gt=0,lte=90"` // degrees from horizontal
	Density  float64  `json:"density" yaml:"density" validate:"finite,gt=0"`   // kg/m³
	Surface  Surface  `json:"surface" yaml:"surface" validate:"oneof=land water"`
	Approach Approach `json:"approach,omitempty" yaml:"approach,omitempty" validate:"omitempty,oneof=top north east south west"`
}

// DefaultImpactParams returns the reference scenario: a 370 m rocky asteroid
// striking land off the Florida coast at 20 km/s and 45 degrees.
func DefaultImpactParams() ImpactParams {
	return ImpactParams{
		Lat:      28.5,
		Lon:      -80.5,
		Diameter: 370,
		Velocity: 20,
		Angle:    45,
		Density:  3000,
		Surface:  SurfaceLand,
		Approach: ApproachTop,
	}
}

// ImpactResults holds the derived physical effects of an impact.
type ImpactResults struct {
	EnergyMT          float64 `json:"energy_mt"`
	Magnitude         float64 `json:"magnitude"`
	CraterDiamKm      float64 `json:"crater_diam_km"`
	CraterDepthKm     float64 `json:"crater_depth_km"`
	ThermalRadKm      float64 `json:"thermal_rad_km"`
	ThermalCasualties int64   `json:"thermal_casualties"`
	Fatalities        int64   `json:"fatalities"`
	IsWater           bool    `json:"is_water"`
}

// Estimator computes impact effects. It holds only the read-only reference
// city table and is safe for concurrent use.
type Estimator struct {
	cities []ReferenceCity
}

// NewEstimator creates an Estimator over the given reference cities. The
// slice is copied; pass nil to use DefaultReferenceCities.
func NewEstimator(cities []ReferenceCity) *Estimator {
	if cities == nil {
		cities = DefaultReferenceCities()
	}
	return &Estimator{cities: append([]ReferenceCity(nil), cities...)}
}

var defaultEstimator = NewEstimator(nil)

// Estimate validates params and computes the impact effects using the
// default reference cities.
func Estimate(p ImpactParams) (ImpactResults, error) {
	return defaultEstimator.Estimate(p)
}

// Compute runs the model without validation using the default reference cities.
func Compute(p ImpactParams) ImpactResults {
	return defaultEstimator.Compute(p)
}

// Estimate validates params and computes the impact effects. Invalid params
// return an *InvalidParameterError and zero results.
func (e *Estimator) Estimate(p ImpactParams) (ImpactResults, error) {
	if err := Validate(p); err != nil {
		return ImpactResults{}, err
	}
	return e.Compute(p), nil
}

// Compute runs the model without validation. Out-of-domain inputs propagate
// through the formulas unchanged.
func (e *Estimator) Compute(p ImpactParams) ImpactResults {
	isWater := p.Surface == SurfaceWater

	energyJoules := KineticEnergy(p.Diameter, p.Density, p.Velocity)
	energyMT := energyJoules / joulesPerMegaton

	var craterDiam, craterDepth float64
	if !isWater {
		craterDiam = craterDiameter(p.Diameter, p.Density, p.Velocity, p.Angle, targetDensity(p.Surface))
		craterDepth = craterDiam * craterDepthRatio
	}

	thermalRad := math.Pow(energyMT, thermalExponent) * thermalCoefficient

	popDensity := e.PopulationDensity(p.Lat, p.Lon, p.Surface)
	lethalArea := math.Pi * thermalRad * thermalRad
	thermalCasualties := math.Round(popDensity * lethalArea)

	var fatalities float64
	if isWater {
		fatalities = math.Round(thermalCasualties * waterFatalityRatio)
	} else {
		craterArea := math.Pi * (craterDiam / 2) * (craterDiam / 2)
		fatalities = math.Round(popDensity * math.Max(craterArea, lethalArea) * lethalFraction)
	}

	return ImpactResults{
		EnergyMT:          energyMT,
		Magnitude:         seismicMagnitude(energyJoules),
		CraterDiamKm:      craterDiam,
		CraterDepthKm:     craterDepth,
		ThermalRadKm:      thermalRad,
		ThermalCasualties: int64(thermalCasualties),
		Fatalities:        int64(fatalities),
		IsWater:           isWater,
	}
}

// KineticEnergy returns the kinetic energy in joules of a spherical body with
// the given diameter (m), density (kg/m³) and velocity (km/s).
func KineticEnergy(diameter, density, velocityKms float64) float64 {
	r := diameter / 2
	volume := (4.0 / 3.0) * math.Pi * r * r * r
	mass := density * volume
	v := velocityKms * 1000
	return 0.5 * mass * v * v
}

func craterDiameter(diameter, density, velocityKms, angleDeg, target float64) float64 {
	return craterCoefficient *
		math.Pow(density/target, 1.0/3) *
		math.Pow(diameter/1000, craterDiameterExponent) *
		math.Pow(velocityKms, craterVelocityExponent) *
		math.Pow(math.Sin(degToRad(angleDeg)), 1.0/3)
}

func targetDensity(s Surface) float64 {
	if s == SurfaceWater {
		return waterTargetDensity
	}
	return landTargetDensity
}

func seismicMagnitude(energyJoules float64) float64 {
	seismicEnergy := energyJoules * seismicEfficiency
	return math.Max(0, (math.Log10(math.Max(1, seismicEnergy))-seismicOffset)/seismicScale)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
