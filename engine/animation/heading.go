package animation

import m "math"

// Heading is the ground position and orientation of a vehicle on its path.
// Angles are in radians.
type Heading struct {
	X     float32
	Z     float32
	Roll  float32
	Pitch float32
	Yaw   float32
}

// Trajectory maps elapsed time to a heading.
type Trajectory func(elapsed float64) Heading

const (
	headingPathSize     = 15.0
	headingCircuitSpeed = 0.8
	headingStep         = 0.05
)

// SimpleHeading follows a closed figure-eight patrol path. Yaw faces the
// direction of travel, pitch tilts forward with speed and roll banks with
// the turn.
func SimpleHeading(elapsed float64) Heading {
	t := elapsed
	xpos := headingPathSize * m.Sin(2.0*t*headingCircuitSpeed)
	xposNext := headingPathSize * m.Sin(2.0*(t+headingStep)*headingCircuitSpeed)
	zpos := 3.0 * headingPathSize * m.Cos(t*headingCircuitSpeed)
	zposNext := 3.0 * headingPathSize * m.Cos((t+headingStep)*headingCircuitSpeed)

	dx := xposNext - xpos
	dz := zposNext - zpos

	return Heading{
		X:     float32(xpos),
		Z:     float32(zpos),
		Roll:  float32(m.Sin(t*headingCircuitSpeed) * 0.5),
		Pitch: float32(-0.175 * m.Hypot(dx, dz)),
		Yaw:   float32(m.Pi + m.Atan2(dx, dz)),
	}
}
