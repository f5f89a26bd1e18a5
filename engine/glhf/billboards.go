package glhf

import (
	_ "embed"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/emberglow/engine/particles"
	"github.com/pkg/errors"
)

var (
	//go:embed shader/billboard.vert
	billboardVertexShaderSource string

	//go:embed shader/billboard.frag
	billboardFragmentShaderSource string
)

const (
	uniformViewProjection = iota
	uniformCameraRight
	uniformCameraUp
	uniformHasSprite
	uniformSprite
)

var (
	billboardVertexFormat = AttrFormat{
		{Name: "corner", Type: Vec2},
	}
	billboardInstanceFormat = AttrFormat{
		{Name: "instancePosition", Type: Vec3},
		{Name: "instanceSize", Type: Float},
		{Name: "instanceColor", Type: Vec3},
		{Name: "instanceAlpha", Type: Float},
	}
	billboardUniformFormat = AttrFormat{
		Attr{Name: "viewProjection", Type: Mat4},
		Attr{Name: "cameraRight", Type: Vec3},
		Attr{Name: "cameraUp", Type: Vec3},
		Attr{Name: "hasSprite", Type: Int},
		Attr{Name: "sprite", Type: Int},
	}
	// two CCW triangles spanning [-1,1]²
	billboardQuad = []GlFloat{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
)

// BillboardBatch draws particle instances as camera-facing quads with one instanced call. It
// implements particles.GPU.
type BillboardBatch struct {
	shader    *Shader
	quad      *VertexSlice[GlFloat]
	instances *InstanceBuffer
	sprite    *Texture
}

// NewBillboardBatch compiles the billboard shader and sets up the quad and instance buffers.
// sprite may be nil, then particles are drawn as soft circles.
func NewBillboardBatch(sprite *Texture) (*BillboardBatch, error) {
	if billboardInstanceFormat.Size() != particles.InstanceStride {
		return nil, errors.New("billboard instance format does not match particle instance layout")
	}
	shader, err := NewShader(billboardVertexFormat, billboardUniformFormat, billboardVertexShaderSource, billboardFragmentShaderSource)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create billboard shader")
	}

	quad, err := MakeVertexSlice(shader, 6, 6)
	if err != nil {
		shader.Release()
		return nil, errors.Wrap(err, "failed to create billboard quad")
	}
	instances := NewInstanceBuffer(billboardInstanceFormat)

	quad.Begin()
	quad.SetVertexData(billboardQuad)
	err = quad.AttachInstances(instances)
	quad.End()
	if err != nil {
		instances.Release()
		quad.Release()
		shader.Release()
		return nil, err
	}

	return &BillboardBatch{
		shader:    shader,
		quad:      quad,
		instances: instances,
		sprite:    sprite,
	}, nil
}

// NewParticleGPU adapts NewBillboardBatch to particles.GPUFactory.
func NewParticleGPU(sprite *Texture) particles.GPUFactory {
	return func() (particles.GPU, error) {
		return NewBillboardBatch(sprite)
	}
}

func (b *BillboardBatch) ReserveInstances(byteSize int) {
	b.instances.Reserve(byteSize)
}

func (b *BillboardBatch) UploadInstances(data []float32) {
	b.instances.Upload(data)
}

func (b *BillboardBatch) BeginPass(mode particles.BlendMode) func() {
	previous := CaptureBlendState()
	switch mode {
	case particles.BlendAlpha:
		SetBlending(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, false)
	default:
		SetBlending(gl.SRC_ALPHA, gl.ONE, false)
	}
	return previous.Restore
}

func (b *BillboardBatch) DrawInstanced(viewProjection mgl32.Mat4, cameraRight, cameraUp mgl32.Vec3, count int) {
	b.shader.Begin()
	b.shader.SetUniformAttr(uniformViewProjection, viewProjection)
	b.shader.SetUniformAttr(uniformCameraRight, cameraRight)
	b.shader.SetUniformAttr(uniformCameraUp, cameraUp)
	if b.sprite != nil {
		gl.ActiveTexture(gl.TEXTURE0)
		b.sprite.Begin()
		b.shader.SetUniformAttr(uniformHasSprite, int32(1))
		b.shader.SetUniformAttr(uniformSprite, int32(0))
	} else {
		b.shader.SetUniformAttr(uniformHasSprite, int32(0))
	}

	b.quad.Begin()
	b.quad.DrawInstanced(count)
	b.quad.End()

	if b.sprite != nil {
		b.sprite.End()
	}
	b.shader.End()
}

// Release deletes the shader, quad and instance buffer. The sprite belongs to the caller.
func (b *BillboardBatch) Release() {
	b.instances.Release()
	b.quad.Release()
	b.shader.Release()
}
