package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

// Clamp limits f to [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	return max(low, min(f, high))
}

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// WrapAngle maps an angle in radians into [-π, π).
func WrapAngle(radians float32) float32 {
	if radians >= -K_PI && radians < K_PI {
		return radians
	}
	r := float32(m.Mod(float64(radians+K_PI), float64(K_PI_2)))
	if r < 0 {
		r += K_PI_2
	}
	return r - K_PI
}
