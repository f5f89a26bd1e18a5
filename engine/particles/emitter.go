package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/emberglow/engine/util"
)

// EmitterConfig describes how new particles are sampled. It is passed by value and never
// retained.
type EmitterConfig struct {
	Position    mgl32.Vec3 `toml:"position" yaml:"position"`
	Direction   mgl32.Vec3 `toml:"direction" yaml:"direction"`
	SpreadAngle float32    `toml:"spread_angle" yaml:"spread_angle"` // half angle of the cone in degrees
	MinSpeed    float32    `toml:"min_speed" yaml:"min_speed"`
	MaxSpeed    float32    `toml:"max_speed" yaml:"max_speed"`
	MinLife     float32    `toml:"min_life" yaml:"min_life"`
	MaxLife     float32    `toml:"max_life" yaml:"max_life"`
	MinSize     float32    `toml:"min_size" yaml:"min_size"`
	MaxSize     float32    `toml:"max_size" yaml:"max_size"`
	ColorStart  mgl32.Vec3 `toml:"color_start" yaml:"color_start"`
	ColorEnd    mgl32.Vec3 `toml:"color_end" yaml:"color_end"`
	Gravity     float32    `toml:"gravity" yaml:"gravity"`     // acceleration along world Y
	EmitRate    float32    `toml:"emit_rate" yaml:"emit_rate"` // particles per second
	// MaxParticles is the pool size this emitter was authored for. Emit never resizes the pool.
	MaxParticles int `toml:"max_particles" yaml:"max_particles"`
}

func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		Position:     mgl32.Vec3{0, 0, 0},
		Direction:    mgl32.Vec3{0, 1, 0},
		SpreadAngle:  30,
		MinSpeed:     1,
		MaxSpeed:     3,
		MinLife:      0.5,
		MaxLife:      2,
		MinSize:      0.05,
		MaxSize:      0.15,
		ColorStart:   mgl32.Vec3{1, 0.8, 0.3},
		ColorEnd:     mgl32.Vec3{1, 0.1, 0},
		Gravity:      -2,
		EmitRate:     50,
		MaxParticles: 500,
	}
}

func (c EmitterConfig) WithPosition(position mgl32.Vec3) EmitterConfig {
	c.Position = position
	return c
}

func (c EmitterConfig) WithDirection(direction mgl32.Vec3) EmitterConfig {
	c.Direction = direction
	return c
}

// nearVerticalDot is the |dir·up| above which world up is too close to dir to span a basis.
const nearVerticalDot = 0.99

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	worldForward = mgl32.Vec3{0, 0, 1}
)

// Emitter turns configurations into spawned particles. It holds no per-emitter state; the
// only thing it carries is the random stream.
type Emitter struct {
	rng Random
}

func NewEmitter(rng Random) Emitter {
	return Emitter{rng: rng}
}

// EmissionCount is floor(rate*dt), except that a zero count is bumped to one with probability
// rate*dt. No fractional remainder is carried between calls.
func EmissionCount(rng Random, rate, dt float32) int {
	expected := rate * dt
	if expected <= 0 {
		return 0
	}
	toEmit := int(util.Floor(expected))
	if toEmit == 0 && rng.Float32() < expected {
		toEmit = 1
	}
	return toEmit
}

// Emit spawns up to EmissionCount particles into dead slots, lowest index first. Whatever does
// not fit is dropped. A particle whose sampled life is not positive is dead on arrival and
// counts as neither spawned nor dropped.
func (e Emitter) Emit(pool *Pool, cfg EmitterConfig, dt float32) (spawned, dropped int) {
	toEmit := EmissionCount(e.rng, cfg.EmitRate, dt)
	cursor := 0
	placed := 0
	for placed < toEmit {
		index, found := pool.FindDeadSlotFrom(cursor)
		if !found {
			break
		}
		p := pool.Slot(index)
		e.spawn(p, cfg)
		placed++
		if p.Alive() {
			spawned++
		}
		cursor = index + 1
	}
	return spawned, toEmit - placed
}

func (e Emitter) spawn(p *Particle, cfg EmitterConfig) {
	p.Life = Uniform(e.rng, cfg.MinLife, cfg.MaxLife)
	p.MaxLife = p.Life
	p.Size = Uniform(e.rng, cfg.MinSize, cfg.MaxSize)
	p.ColorStart = cfg.ColorStart
	p.ColorEnd = cfg.ColorEnd
	p.Color = cfg.ColorStart
	p.Position = cfg.Position

	direction := SampleConeDirection(e.rng, cfg.Direction, cfg.SpreadAngle)
	p.Velocity = direction.Mul(Uniform(e.rng, cfg.MinSpeed, cfg.MaxSpeed))
	p.Gravity = cfg.Gravity
}

// SampleConeDirection returns a unit vector inside the cone of half angle spreadDegrees around
// direction. The polar angle is uniform in angle, not in solid angle, so samples bunch up
// towards the axis.
func SampleConeDirection(rng Random, direction mgl32.Vec3, spreadDegrees float32) mgl32.Vec3 {
	spread := util.ToRadian(spreadDegrees)
	theta := Uniform(rng, 0, 2*math.Pi)
	phi := Uniform(rng, 0, spread)
	sinPhi := util.Sin(phi)
	local := mgl32.Vec3{sinPhi * util.Cos(theta), util.Cos(phi), sinPhi * util.Sin(theta)}

	dir := normalizeOr(direction, worldUp)
	right, localUp := coneBasis(dir)
	return dir.Mul(local.Y()).Add(right.Mul(local.X())).Add(localUp.Mul(local.Z()))
}

// coneBasis completes dir to an orthonormal frame. World up is the reference axis unless dir
// is nearly vertical, then world forward is used so the cross product stays well defined.
func coneBasis(dir mgl32.Vec3) (right, up mgl32.Vec3) {
	reference := worldUp
	if util.Abs(dir.Dot(worldUp)) >= nearVerticalDot {
		reference = worldForward
	}
	right = dir.Cross(reference).Normalize()
	up = right.Cross(dir)
	return right, up
}

func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return fallback
	}
	return v.Normalize()
}
