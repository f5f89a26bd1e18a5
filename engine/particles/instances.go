package particles

import "github.com/go-gl/mathgl/mgl32"

// Instance is what the renderer needs of one live particle.
type Instance struct {
	Position mgl32.Vec3
	Size     float32
	Color    mgl32.Vec3
	Alpha    float32
}

const (
	// InstanceFloats is the number of float32 per instance: position, size, color, alpha.
	InstanceFloats = 8
	// InstanceStride is the size of one instance in bytes.
	InstanceStride = InstanceFloats * 4
)

// CollectInstances appends one Instance per live particle, in slot order, to dst[:0].
func CollectInstances(pool *Pool, dst []Instance) []Instance {
	dst = dst[:0]
	for i := range pool.slots {
		p := &pool.slots[i]
		if !p.Alive() {
			continue
		}
		dst = append(dst, Instance{
			Position: p.Position,
			Size:     p.Size,
			Color:    p.Color,
			Alpha:    fade(p),
		})
	}
	return dst
}

// FlattenInstances writes the instances into dst[:0] in GPU layout.
func FlattenInstances(instances []Instance, dst []float32) []float32 {
	dst = dst[:0]
	for _, in := range instances {
		dst = append(dst,
			in.Position[0], in.Position[1], in.Position[2],
			in.Size,
			in.Color[0], in.Color[1], in.Color[2],
			in.Alpha,
		)
	}
	return dst
}
