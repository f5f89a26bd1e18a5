package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectInstancesInSlotOrder(t *testing.T) {
	pool := livePool(5, 1, 3, 4)
	pool.Slot(3).Life = 0.5

	instances := CollectInstances(pool, nil)

	require.Len(t, instances, 3)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, instances[0].Position)
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, instances[1].Position)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, instances[2].Position)
	assert.Equal(t, float32(2), instances[0].Size)
	assert.Equal(t, float32(0.5), instances[0].Alpha)
	assert.Equal(t, float32(0.25), instances[1].Alpha)
}

func TestCollectInstancesReusesBuffer(t *testing.T) {
	buffer := make([]Instance, 0, 8)
	buffer = CollectInstances(livePool(4, 0, 1, 2, 3), buffer)
	require.Len(t, buffer, 4)

	buffer = CollectInstances(livePool(4, 2), buffer)
	require.Len(t, buffer, 1)
	assert.Equal(t, 8, cap(buffer))
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, buffer[0].Position)
}

func TestCollectInstancesAlphaInRange(t *testing.T) {
	pool := NewPool(3)
	pool.Slot(0).Life, pool.Slot(0).MaxLife = 2, 2
	pool.Slot(1).Life, pool.Slot(1).MaxLife = 0.001, 4
	pool.Slot(2).Life, pool.Slot(2).MaxLife = 1e-8, 0

	for _, in := range CollectInstances(pool, nil) {
		assert.GreaterOrEqual(t, in.Alpha, float32(0))
		assert.LessOrEqual(t, in.Alpha, float32(1))
	}
}

func TestFlattenInstancesLayout(t *testing.T) {
	instances := []Instance{
		{Position: mgl32.Vec3{1, 2, 3}, Size: 4, Color: mgl32.Vec3{5, 6, 7}, Alpha: 8},
		{Position: mgl32.Vec3{9, 10, 11}, Size: 12, Color: mgl32.Vec3{13, 14, 15}, Alpha: 16},
	}

	flat := FlattenInstances(instances, nil)

	require.Len(t, flat, 2*InstanceFloats)
	for i, v := range flat {
		assert.Equal(t, float32(i+1), v)
	}
	assert.Equal(t, 32, InstanceStride)
}
