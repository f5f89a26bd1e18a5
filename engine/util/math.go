package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func ToRadian(angle float32) float32 {
	return mgl32.DegToRad(angle)
}

func Mix(a, b, factor float32) float32 {
	return a*(1-factor) + factor*b
}

// Lerp3 interpolates component-wise; factor 0 yields one, factor 1 yields two.
func Lerp3(one, two mgl32.Vec3, factor float32) mgl32.Vec3 {
	return mgl32.Vec3{Mix(one.X(), two.X(), factor), Mix(one.Y(), two.Y(), factor), Mix(one.Z(), two.Z(), factor)}
}

func Clamp(value, min, max float32) float32 {
	return float32(math.Min(math.Max(float64(value), float64(min)), float64(max)))
}

// AngleBetween returns the angle between two non-zero vectors in radians.
func AngleBetween(a, b mgl32.Vec3) float32 {
	cos := Clamp(a.Normalize().Dot(b.Normalize()), -1, 1)
	return float32(math.Acos(float64(cos)))
}
