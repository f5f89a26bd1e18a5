package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// fixedRandom always returns the same sample.
type fixedRandom float32

func (f fixedRandom) Float32() float32 {
	return float32(f)
}

// recordingGPU remembers every call in order.
type recordingGPU struct {
	calls    []string
	reserves []int
	uploads  [][]float32
	passes   []BlendMode
	draws    []int
	restores int
	released int

	lastViewProjection mgl32.Mat4
	lastRight, lastUp  mgl32.Vec3
}

func (g *recordingGPU) ReserveInstances(byteSize int) {
	g.calls = append(g.calls, "reserve")
	g.reserves = append(g.reserves, byteSize)
}

func (g *recordingGPU) UploadInstances(data []float32) {
	g.calls = append(g.calls, "upload")
	g.uploads = append(g.uploads, append([]float32(nil), data...))
}

func (g *recordingGPU) BeginPass(mode BlendMode) func() {
	g.calls = append(g.calls, "begin")
	g.passes = append(g.passes, mode)
	return func() {
		g.calls = append(g.calls, "restore")
		g.restores++
	}
}

func (g *recordingGPU) DrawInstanced(viewProjection mgl32.Mat4, cameraRight, cameraUp mgl32.Vec3, count int) {
	g.calls = append(g.calls, "draw")
	g.draws = append(g.draws, count)
	g.lastViewProjection = viewProjection
	g.lastRight = cameraRight
	g.lastUp = cameraUp
}

func (g *recordingGPU) Release() {
	g.calls = append(g.calls, "release")
	g.released++
}

func factoryFor(gpu *recordingGPU) GPUFactory {
	return func() (GPU, error) {
		return gpu, nil
	}
}

// testEmitter is a deterministic emitter with no spread.
func testEmitter() EmitterConfig {
	return EmitterConfig{
		Position:     mgl32.Vec3{1, 2, 3},
		Direction:    mgl32.Vec3{0, 1, 0},
		SpreadAngle:  0,
		MinSpeed:     2,
		MaxSpeed:     2,
		MinLife:      1,
		MaxLife:      1,
		MinSize:      0.5,
		MaxSize:      0.5,
		ColorStart:   mgl32.Vec3{1, 0, 0},
		ColorEnd:     mgl32.Vec3{0, 0, 1},
		Gravity:      -9.8,
		EmitRate:     10,
		MaxParticles: 10,
	}
}

// livePool returns a pool with the given slots alive, the rest dead.
func livePool(capacity int, alive ...int) *Pool {
	pool := NewPool(capacity)
	for _, i := range alive {
		p := pool.Slot(i)
		p.Life = 1
		p.MaxLife = 2
		p.Size = float32(i) + 1
		p.Position = mgl32.Vec3{float32(i), 0, 0}
		p.Color = mgl32.Vec3{0.5, 0.5, 0.5}
	}
	return pool
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

type nopGPU struct{}

func (nopGPU) ReserveInstances(int)                                  {}
func (nopGPU) UploadInstances([]float32)                             {}
func (nopGPU) BeginPass(BlendMode) func()                            { return func() {} }
func (nopGPU) DrawInstanced(mgl32.Mat4, mgl32.Vec3, mgl32.Vec3, int) {}
func (nopGPU) Release()                                              {}
