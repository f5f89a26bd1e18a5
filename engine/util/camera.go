package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera interface {
	GetViewMatrix() mgl32.Mat4
	GetProjectionMatrix() mgl32.Mat4
	GetPosition() mgl32.Vec3
}

// CameraBasis returns the world-space right and up vectors of a view matrix. They are the
// first two rows of its rotation part.
func CameraBasis(view mgl32.Mat4) (right, up mgl32.Vec3) {
	right = mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	up = mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}
	return right, up
}

// OrbitCamera circles a target point at a fixed distance and height.
type OrbitCamera struct {
	target     mgl32.Vec3
	distance   float32
	height     float32
	angle      float32
	orbitSpeed float32
	fovY       float32
	aspect     float32
	near, far  float32
	position   mgl32.Vec3
	view       mgl32.Mat4
	projection mgl32.Mat4
}

func NewOrbitCamera(windowWidth, windowHeight int, distance, height, orbitSpeed float32) *OrbitCamera {
	c := &OrbitCamera{
		distance:   distance,
		height:     height,
		orbitSpeed: orbitSpeed,
		fovY:       mgl32.DegToRad(60),
		aspect:     float32(windowWidth) / float32(windowHeight),
		near:       0.1,
		far:        200,
	}
	c.projection = mgl32.Perspective(c.fovY, c.aspect, c.near, c.far)
	c.updateTransform()
	return c
}

func (c *OrbitCamera) SetTarget(target mgl32.Vec3) {
	c.target = target
	c.updateTransform()
}

// Update advances the orbit angle by orbitSpeed radians per second.
func (c *OrbitCamera) Update(deltaTime float64) {
	c.angle += c.orbitSpeed * float32(deltaTime)
	if c.angle > 2*math.Pi {
		c.angle -= 2 * math.Pi
	}
	c.updateTransform()
}

func (c *OrbitCamera) updateTransform() {
	offset := mgl32.Vec3{Cos(c.angle) * c.distance, c.height, Sin(c.angle) * c.distance}
	c.position = c.target.Add(offset)
	c.view = mgl32.LookAtV(c.position, c.target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCamera) GetViewMatrix() mgl32.Mat4 {
	return c.view
}

func (c *OrbitCamera) GetProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

func (c *OrbitCamera) GetProjectionViewMatrix() mgl32.Mat4 {
	return c.projection.Mul4(c.view)
}

func (c *OrbitCamera) GetPosition() mgl32.Vec3 {
	return c.position
}

// GetBasis returns the billboard right and up vectors for the current view.
func (c *OrbitCamera) GetBasis() (right, up mgl32.Vec3) {
	return CameraBasis(c.view)
}
