package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatLonToVector(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected Vec3
	}{
		{"null island", 0, 0, Vec3{X: 5}},
		{"north pole", 90, 0, Vec3{Y: 5}},
		{"south pole", -90, 0, Vec3{Y: -5}},
		{"antimeridian", 0, 180, Vec3{X: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := LatLonToVector(tt.lat, tt.lon, SceneEarthRadius)
			assert.InDelta(t, tt.expected.X, v.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, v.Y, 1e-9)
			assert.InDelta(t, tt.expected.Z, v.Z, 1e-9)
			assert.InDelta(t, SceneEarthRadius, v.Length(), 1e-9)
		})
	}
}

func TestVectorToLatLon_RoundTrip(t *testing.T) {
	for _, c := range []struct{ lat, lon float64 }{
		{28.5, -80.5},
		{40.7, -74.0},
		{-33.9, 151.2},
		{51.5, -0.1},
		{10, 100},
		{-60, -170},
	} {
		lat, lon := VectorToLatLon(LatLonToVector(c.lat, c.lon, SceneEarthRadius), SceneEarthRadius)
		assert.InDelta(t, c.lat, lat, 1e-9)
		assert.InDelta(t, c.lon, lon, 1e-9)
	}
}

func TestComputeTrajectory_Top(t *testing.T) {
	p := DefaultImpactParams()

	traj := ComputeTrajectory(p)
	assert.InDelta(t, SceneEarthRadius, traj.Target.Length(), 1e-9)
	assert.InDelta(t, sceneStartDistance, traj.Start.Length(), 1e-9)

	// Radial: start and target point the same way.
	up := traj.Target.Normalize()
	dir := traj.Start.Normalize()
	assert.InDelta(t, up.X, dir.X, 1e-9)
	assert.InDelta(t, up.Y, dir.Y, 1e-9)
	assert.InDelta(t, up.Z, dir.Z, 1e-9)

	p.Approach = ""
	assert.Equal(t, traj, ComputeTrajectory(p), "empty approach behaves like top")
}

func TestComputeTrajectory_Directions(t *testing.T) {
	base := ImpactParams{Lat: 0, Lon: 0, Diameter: 370, Velocity: 20, Angle: 45, Density: 3000, Surface: SurfaceLand}

	at := func(a Approach) Trajectory {
		p := base
		p.Approach = a
		return ComputeTrajectory(p)
	}

	north, south, east, west := at(ApproachNorth), at(ApproachSouth), at(ApproachEast), at(ApproachWest)

	for name, traj := range map[string]Trajectory{"north": north, "south": south, "east": east, "west": west} {
		offset := traj.Start.Add(traj.Target.Negate())
		assert.InDelta(t, sceneStartDistance, offset.Length(), 1e-9, name)
	}

	s := math.Sqrt(2) / 2 * sceneStartDistance
	assert.InDelta(t, SceneEarthRadius+s, north.Start.X, 1e-9)
	assert.InDelta(t, s, north.Start.Y, 1e-9)
	assert.InDelta(t, -s, south.Start.Y, 1e-9)
	assert.InDelta(t, 0, east.Start.Y, 1e-9)
	assert.InDelta(t, -east.Start.Z, west.Start.Z, 1e-9)
	assert.NotZero(t, east.Start.Z)
}

func TestComputeTrajectory_SteeperAngleRisesHigher(t *testing.T) {
	base := ImpactParams{Lat: 0, Lon: 0, Diameter: 370, Velocity: 20, Density: 3000, Surface: SurfaceLand, Approach: ApproachNorth}

	prev := 0.0
	for _, a := range []float64{15, 30, 60, 90} {
		p := base
		p.Angle = a
		h := ComputeTrajectory(p).Start.Length()
		assert.Greater(t, h, prev, "angle %v", a)
		prev = h
	}
}

func TestComputeTrajectory_PoleIsFinite(t *testing.T) {
	p := ImpactParams{Lat: 90, Lon: 0, Diameter: 370, Velocity: 20, Angle: 30, Density: 3000, Surface: SurfaceLand, Approach: ApproachEast}

	start := ComputeTrajectory(p).Start
	for _, f := range []float64{start.X, start.Y, start.Z} {
		assert.False(t, math.IsNaN(f))
	}
	assert.InDelta(t, SceneEarthRadius+sceneStartDistance, start.Y, 1e-9)
}

func TestVec3_NormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1.0, Vec3{X: 3, Y: 4}.Normalize().Length(), 1e-12)
}
