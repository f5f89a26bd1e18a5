package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawWithNothingAliveTouchesNoDevice(t *testing.T) {
	gpu := &recordingGPU{}
	renderer := NewBatchRenderer(gpu, 8, BlendAdditive)

	renderer.Draw(NewPool(8), 0, mgl32.Ident4(), mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})

	assert.Empty(t, gpu.calls)
	assert.Equal(t, uint64(0), renderer.DrawCalls())
}

func TestDrawIssuesOneInstancedCall(t *testing.T) {
	gpu := &recordingGPU{}
	renderer := NewBatchRenderer(gpu, 8, BlendAdditive)
	pool := livePool(8, 0, 2, 5)
	viewProjection := mgl32.Perspective(1, 1.5, 0.1, 100)
	right, up := mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}

	renderer.Draw(pool, 3, viewProjection, right, up)

	assert.Equal(t, []string{"reserve", "upload", "begin", "draw", "restore"}, gpu.calls)
	assert.Equal(t, []int{3}, gpu.draws)
	assert.Equal(t, []BlendMode{BlendAdditive}, gpu.passes)
	assert.Equal(t, viewProjection, gpu.lastViewProjection)
	assert.Equal(t, right, gpu.lastRight)
	assert.Equal(t, up, gpu.lastUp)
	require.Len(t, gpu.uploads, 1)
	assert.Len(t, gpu.uploads[0], 3*InstanceFloats)
	assert.Equal(t, float32(5), gpu.uploads[0][2*InstanceFloats])
	assert.Equal(t, uint64(1), renderer.DrawCalls())
}

func TestDrawRestoresStateEveryFrame(t *testing.T) {
	gpu := &recordingGPU{}
	renderer := NewBatchRenderer(gpu, 4, BlendAlpha)
	pool := livePool(4, 0, 1)

	for i := 0; i < 3; i++ {
		renderer.Draw(pool, 2, mgl32.Ident4(), mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	}

	assert.Equal(t, 3, gpu.restores)
	assert.Equal(t, []BlendMode{BlendAlpha, BlendAlpha, BlendAlpha}, gpu.passes)
	assert.Equal(t, "restore", gpu.calls[len(gpu.calls)-1])
}

func TestInstanceBufferGrowsAndNeverShrinks(t *testing.T) {
	gpu := &recordingGPU{}
	renderer := NewBatchRenderer(gpu, 100, BlendAdditive)
	draw := func(alive ...int) {
		renderer.Draw(livePool(100, alive...), len(alive), mgl32.Ident4(), mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	}

	draw(0, 1, 2)
	assert.Equal(t, []int{3 * InstanceStride}, gpu.reserves)

	draw(0, 1)
	assert.Equal(t, []int{3 * InstanceStride}, gpu.reserves)
	assert.Equal(t, 3*InstanceStride, renderer.CapacityBytes())

	draw(0, 1, 2, 3)
	assert.Equal(t, []int{3 * InstanceStride, 6 * InstanceStride}, gpu.reserves)

	draw(0)
	assert.Equal(t, 6*InstanceStride, renderer.CapacityBytes())
	assert.Len(t, gpu.reserves, 2)
}

func TestInstanceBufferCappedAtPoolSize(t *testing.T) {
	gpu := &recordingGPU{}
	renderer := NewBatchRenderer(gpu, 5, BlendAdditive)

	renderer.Draw(livePool(5, 0, 1, 2), 3, mgl32.Ident4(), mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	renderer.Draw(livePool(5, 0, 1, 2, 3, 4), 5, mgl32.Ident4(), mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})

	assert.Equal(t, []int{3 * InstanceStride, 5 * InstanceStride}, gpu.reserves)
	assert.Equal(t, 5*InstanceStride, renderer.CapacityBytes())
}

func TestParseBlendMode(t *testing.T) {
	cases := map[string]BlendMode{
		"":          BlendAdditive,
		"additive":  BlendAdditive,
		" Additive": BlendAdditive,
		"add":       BlendAdditive,
		"alpha":     BlendAlpha,
		"ALPHA":     BlendAlpha,
	}
	for input, want := range cases {
		got, err := ParseBlendMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseBlendMode("multiply")
	assert.EqualError(t, err, `unknown blend mode "multiply"`)

	assert.Equal(t, "additive", BlendAdditive.String())
	assert.Equal(t, "alpha", BlendAlpha.String())
}
