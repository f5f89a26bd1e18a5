package particles

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/emberglow/engine/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type BlendMode int

const (
	// BlendAdditive adds src*alpha onto the framebuffer. Order independent.
	BlendAdditive BlendMode = iota
	// BlendAlpha is regular alpha blending. Instances are drawn in slot order without any depth
	// sorting, so overlapping particles can composite in the wrong order.
	BlendAlpha
)

func (b BlendMode) String() string {
	switch b {
	case BlendAdditive:
		return "additive"
	case BlendAlpha:
		return "alpha"
	}
	return "unknown"
}

func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "additive", "add":
		return BlendAdditive, nil
	case "alpha":
		return BlendAlpha, nil
	}
	return BlendAdditive, errors.Errorf("unknown blend mode %q", s)
}

// GPU is the device side of the batch renderer. Implementations own one instance buffer and a
// unit quad.
type GPU interface {
	// ReserveInstances reallocates the instance buffer to byteSize bytes.
	ReserveInstances(byteSize int)
	// UploadInstances overwrites the start of the instance buffer.
	UploadInstances(data []float32)
	// BeginPass enables blending for mode and disables depth writes. The returned function
	// restores the state that was active before.
	BeginPass(mode BlendMode) (restore func())
	// DrawInstanced draws count camera-facing quads in a single call.
	DrawInstanced(viewProjection mgl32.Mat4, cameraRight, cameraUp mgl32.Vec3, count int)
	// Release frees the device resources.
	Release()
}

// GPUFactory creates the device side. It is called once per Init.
type GPUFactory func() (GPU, error)

// BatchRenderer collects live particles and draws them with one instanced call.
type BatchRenderer struct {
	gpu           GPU
	blend         BlendMode
	maxBytes      int
	capacityBytes int
	instances     []Instance
	flat          []float32
	drawCalls     uint64
}

// NewBatchRenderer creates a renderer for at most maxInstances instances. No device memory is
// reserved until the first non-empty draw.
func NewBatchRenderer(gpu GPU, maxInstances int, blend BlendMode) *BatchRenderer {
	if blend == BlendAlpha {
		util.LogParticlesWarning("alpha blended particles are not depth sorted", zap.Stringer("blend", blend))
	}
	return &BatchRenderer{
		gpu:       gpu,
		blend:     blend,
		maxBytes:  maxInstances * InstanceStride,
		instances: make([]Instance, 0, maxInstances),
		flat:      make([]float32, 0, maxInstances*InstanceFloats),
	}
}

// Draw renders the live particles of the pool. With nothing alive it returns before touching
// the device.
func (r *BatchRenderer) Draw(pool *Pool, alive int, viewProjection mgl32.Mat4, cameraRight, cameraUp mgl32.Vec3) {
	if alive == 0 {
		return
	}
	r.instances = CollectInstances(pool, r.instances)
	if len(r.instances) == 0 {
		return
	}
	r.flat = FlattenInstances(r.instances, r.flat)

	required := len(r.instances) * InstanceStride
	if required > r.capacityBytes {
		r.capacityBytes = r.grownCapacity(required)
		r.gpu.ReserveInstances(r.capacityBytes)
		util.LogParticlesDebug("instance buffer grown", zap.Int("bytes", r.capacityBytes))
	}
	r.gpu.UploadInstances(r.flat)

	restore := r.gpu.BeginPass(r.blend)
	r.gpu.DrawInstanced(viewProjection, cameraRight, cameraUp, len(r.instances))
	restore()
	r.drawCalls++
}

// grownCapacity doubles the current capacity until required fits, but never beyond what the
// pool can fill.
func (r *BatchRenderer) grownCapacity(required int) int {
	grown := r.capacityBytes * 2
	if grown < required {
		grown = required
	}
	if grown > r.maxBytes {
		grown = r.maxBytes
	}
	if grown < required {
		grown = required
	}
	return grown
}

// CapacityBytes is the size of the device instance buffer. It only ever grows.
func (r *BatchRenderer) CapacityBytes() int {
	return r.capacityBytes
}

func (r *BatchRenderer) DrawCalls() uint64 {
	return r.drawCalls
}

func (r *BatchRenderer) Blend() BlendMode {
	return r.blend
}
