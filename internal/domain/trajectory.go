package domain

import "math"

// Scene geometry for the globe visualization, in scene units.
const (
	SceneEarthRadius   = 5.0
	sceneStartDistance = 15.0
)

// Vec3 is a point or direction in the globe scene (y is the polar axis).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector in v's direction, or the zero vector
// when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Trajectory is the cosmetic flight path drawn by the globe view. It has no
// bearing on the impact physics.
type Trajectory struct {
	Start  Vec3 `json:"start"`
	Target Vec3 `json:"target"`
}

// LatLonToVector places a geographic coordinate on a sphere of the given radius.
func LatLonToVector(lat, lon, radius float64) Vec3 {
	phi := degToRad(90 - lat)
	theta := degToRad(lon + 180)
	return Vec3{
		X: -radius * math.Sin(phi) * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * math.Sin(phi) * math.Sin(theta),
	}
}

// VectorToLatLon is the inverse of LatLonToVector for a point on the sphere.
func VectorToLatLon(p Vec3, radius float64) (lat, lon float64) {
	lat = 90 - math.Acos(p.Y/radius)*180/math.Pi
	lon = math.Atan2(p.Z, -p.X)*180/math.Pi - 180
	if lon < -180 {
		lon += 360
	}
	return lat, lon
}

// ComputeTrajectory derives the start and target points of the approach
// animation from the impact location, angle, and approach direction.
func ComputeTrajectory(p ImpactParams) Trajectory {
	target := LatLonToVector(p.Lat, p.Lon, SceneEarthRadius)
	return Trajectory{
		Start:  startPosition(target, p.Angle, p.Approach),
		Target: target,
	}
}

func startPosition(target Vec3, angleDeg float64, approach Approach) Vec3 {
	up := target.Normalize()
	if approach == ApproachTop || approach == "" {
		return up.Scale(sceneStartDistance)
	}

	tangent := up.Cross(Vec3{Y: 1}).Normalize()
	bitangent := up.Cross(tangent).Normalize()

	horizontal := Vec3{X: 1}
	switch approach {
	case ApproachNorth:
		horizontal = bitangent.Negate()
	case ApproachEast:
		horizontal = tangent
	case ApproachSouth:
		horizontal = bitangent
	case ApproachWest:
		horizontal = tangent.Negate()
	}

	angle := degToRad(angleDeg)
	dir := up.Scale(math.Sin(angle)).Add(horizontal.Scale(math.Cos(angle))).Normalize()
	return target.Add(dir.Scale(sceneStartDistance))
}
