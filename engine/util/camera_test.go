package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraBasisOfIdentityView(t *testing.T) {
	right, up := CameraBasis(mgl32.Ident4())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, right)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, up)
}

func TestOrbitCameraBasisIsOrthonormal(t *testing.T) {
	camera := NewOrbitCamera(1280, 720, 8, 3, 0.5)
	camera.SetTarget(mgl32.Vec3{0, 1, 0})

	for i := 0; i < 50; i++ {
		camera.Update(0.1)
		right, up := camera.GetBasis()
		toCamera := camera.GetPosition().Sub(mgl32.Vec3{0, 1, 0}).Normalize()

		assert.InDelta(t, 1, right.Len(), 1e-5)
		assert.InDelta(t, 1, up.Len(), 1e-5)
		assert.InDelta(t, 0, right.Dot(up), 1e-5)
		assert.InDelta(t, 0, right.Dot(toCamera), 1e-5)
		assert.InDelta(t, 0, up.Dot(toCamera), 1e-5)
	}
}

func TestOrbitCameraKeepsDistanceAndHeight(t *testing.T) {
	target := mgl32.Vec3{2, 0, -1}
	camera := NewOrbitCamera(800, 600, 5, 2, 1)
	camera.SetTarget(target)
	camera.Update(1.3)

	offset := camera.GetPosition().Sub(target)
	assert.InDelta(t, 2, offset.Y(), 1e-5)
	assert.InDelta(t, 5, mgl32.Vec2{offset.X(), offset.Z()}.Len(), 1e-5)

	clip := camera.GetProjectionViewMatrix().Mul4x1(target.Vec4(1))
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)
}
