package particles

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmissionCount(t *testing.T) {
	cases := []struct {
		name     string
		rng      Random
		rate, dt float32
		want     int
	}{
		{"whole particles", fixedRandom(0.99), 100, 0.05, 5},
		{"fraction is dropped above one", fixedRandom(0), 30, 0.1, 3},
		{"sub integer hit", fixedRandom(0.3), 10, 0.05, 1},
		{"sub integer miss", fixedRandom(0.7), 10, 0.05, 0},
		{"zero rate", fixedRandom(0), 0, 1, 0},
		{"zero dt", fixedRandom(0), 100, 0, 0},
		{"negative rate", fixedRandom(0), -5, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EmissionCount(tc.rng, tc.rate, tc.dt))
		})
	}
}

func TestEmitSpawnsIntoEmptyPool(t *testing.T) {
	pool := NewPool(16)
	emitter := NewEmitter(NewRandomSource(3))
	cfg := testEmitter()
	cfg.EmitRate = 100

	spawned, dropped := emitter.Emit(pool, cfg, 0.05)

	assert.Equal(t, 5, spawned)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 5, pool.CountAlive())
	for i := 0; i < 5; i++ {
		assert.True(t, pool.Slot(i).Alive(), "slot %d", i)
	}
}

func TestEmitDropsWhatDoesNotFit(t *testing.T) {
	pool := NewPool(10)
	emitter := NewEmitter(NewRandomSource(1))
	cfg := testEmitter()
	cfg.EmitRate = 100

	spawned, dropped := emitter.Emit(pool, cfg, 1)

	assert.Equal(t, 10, spawned)
	assert.Equal(t, 90, dropped)
	assert.Equal(t, 10, pool.CountAlive())

	spawned, dropped = emitter.Emit(pool, cfg, 1)
	assert.Equal(t, 0, spawned)
	assert.Equal(t, 100, dropped)
}

func TestEmitDoesNotCountDeadOnArrival(t *testing.T) {
	pool := NewPool(10)
	emitter := NewEmitter(NewRandomSource(2))
	cfg := testEmitter()
	cfg.MinLife, cfg.MaxLife = 0, 0
	cfg.EmitRate = 5

	spawned, dropped := emitter.Emit(pool, cfg, 1)

	assert.Equal(t, 0, spawned)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 0, pool.CountAlive())
}

func TestEmitReusesLowestDeadSlots(t *testing.T) {
	pool := livePool(6, 0, 2, 4, 5)
	emitter := NewEmitter(fixedRandom(0))
	cfg := testEmitter()
	cfg.EmitRate = 2

	spawned, _ := emitter.Emit(pool, cfg, 1)

	require.Equal(t, 2, spawned)
	assert.Equal(t, cfg.Position, pool.Slot(1).Position)
	assert.Equal(t, cfg.Position, pool.Slot(3).Position)
	assert.Equal(t, 6, pool.CountAlive())
}

func TestSpawnInitialState(t *testing.T) {
	pool := NewPool(64)
	emitter := NewEmitter(NewRandomSource(11))
	cfg := testEmitter()
	cfg.MinLife, cfg.MaxLife = 0.5, 1.5
	cfg.MinSize, cfg.MaxSize = 0.1, 0.2
	cfg.MinSpeed, cfg.MaxSpeed = 2, 4
	cfg.SpreadAngle = 20
	cfg.EmitRate = 64

	spawned, _ := emitter.Emit(pool, cfg, 1)
	require.Equal(t, 64, spawned)

	for i := 0; i < pool.Cap(); i++ {
		p := pool.Slot(i)
		assert.Equal(t, p.MaxLife, p.Life)
		assert.GreaterOrEqual(t, p.Life, cfg.MinLife)
		assert.LessOrEqual(t, p.Life, cfg.MaxLife)
		assert.GreaterOrEqual(t, p.Size, cfg.MinSize)
		assert.LessOrEqual(t, p.Size, cfg.MaxSize)
		assert.Equal(t, cfg.ColorStart, p.Color)
		assert.Equal(t, cfg.ColorStart, p.ColorStart)
		assert.Equal(t, cfg.ColorEnd, p.ColorEnd)
		assert.Equal(t, cfg.Position, p.Position)
		assert.Equal(t, cfg.Gravity, p.Gravity)

		speed := p.Velocity.Len()
		assert.GreaterOrEqual(t, speed, cfg.MinSpeed-1e-4)
		assert.LessOrEqual(t, speed, cfg.MaxSpeed+1e-4)
	}
}

func TestZeroSpreadKeepsDirection(t *testing.T) {
	directions := []mgl32.Vec3{
		{0, 1, 0},
		{0, -1, 0},
		{1, 0, 0},
		{0, 0, -1},
		{1, 1, 1},
		{0.05, 0.998, 0},
		{0.1, -0.995, 0.02},
		{0.2, 0.97, 0},
	}
	rng := NewRandomSource(5)
	for _, direction := range directions {
		want := direction.Normalize()
		for i := 0; i < 20; i++ {
			got := SampleConeDirection(rng, direction, 0)
			assertVecNear(t, want, got, 1e-5, "direction %v sampled %v", direction, got)
		}
	}
}

func TestConeSamplesStayInsideSpread(t *testing.T) {
	directions := []mgl32.Vec3{
		{0, 1, 0},
		{0, -1, 0},
		{1, 0, 0},
		{0.3, 0.4, -0.8},
		{0.05, 0.998, 0},
	}
	spreads := []float32{5, 25, 60, 90}
	rng := NewRandomSource(9)
	for _, direction := range directions {
		axis := direction.Normalize()
		for _, spread := range spreads {
			limit := float64(mgl32.DegToRad(spread)) + 1e-3
			for i := 0; i < 500; i++ {
				sample := SampleConeDirection(rng, direction, spread)
				assert.InDelta(t, 1, sample.Len(), 1e-4)
				cos := math.Max(-1, math.Min(1, float64(sample.Dot(axis))))
				assert.LessOrEqual(t, math.Acos(cos), limit, "direction %v spread %v", direction, spread)
			}
		}
	}
}

func TestZeroDirectionFallsBackToUp(t *testing.T) {
	got := SampleConeDirection(fixedRandom(0.5), mgl32.Vec3{}, 0)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, got, 1e-6)
}

// With rate*dt below one, every call emits one particle with probability rate*dt.
func TestSubIntegerEmissionMatchesExpectation(t *testing.T) {
	const (
		trials = 200
		calls  = 100
		rate   = 30
		dt     = float32(1.0 / 60.0)
	)
	rng := NewRandomSource(7)
	total := 0
	distinct := map[int]bool{}
	for trial := 0; trial < trials; trial++ {
		count := 0
		for i := 0; i < calls; i++ {
			count += EmissionCount(rng, rate, dt)
		}
		distinct[count] = true
		total += count
	}
	mean := float64(total) / trials
	assert.InDelta(t, rate*float64(dt)*calls, mean, 1.5)
	assert.Greater(t, len(distinct), 1)
}

func TestDefaultEmitterConfig(t *testing.T) {
	cfg := DefaultEmitterConfig()
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cfg.Direction)
	assert.Equal(t, 500, cfg.MaxParticles)

	moved := cfg.WithPosition(mgl32.Vec3{1, 2, 3}).WithDirection(mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, moved.Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, moved.Direction)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cfg.Position)
}
