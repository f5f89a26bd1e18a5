package particles

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/memmaker/emberglow/engine/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// System is one particle pool together with its renderer. Several systems can live side by
// side; none of them share state.
//
// Emit, Update and Draw must be called from one goroutine, normally the one owning the GL
// context, in that order once per frame.
type System struct {
	id       uuid.UUID
	newGPU   GPUFactory
	rng      Random
	blend    BlendMode
	pool     *Pool
	emitter  Emitter
	gpu      GPU
	renderer *BatchRenderer
	alive    int
	spawned  uint64
	dropped  uint64
}

type Option func(*System)

// WithSeed seeds the random stream used for emission and sampling.
func WithSeed(seed uint64) Option {
	return func(s *System) {
		s.rng = NewRandomSource(seed)
	}
}

// WithRandom replaces the random stream.
func WithRandom(rng Random) Option {
	return func(s *System) {
		s.rng = rng
	}
}

func WithBlendMode(mode BlendMode) Option {
	return func(s *System) {
		s.blend = mode
	}
}

func NewSystem(newGPU GPUFactory, opts ...Option) *System {
	s := &System{
		id:     uuid.New(),
		newGPU: newGPU,
		blend:  BlendAdditive,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRandomSource(1)
	}
	s.emitter = NewEmitter(s.rng)
	return s
}

// Init allocates the pool and creates the device resources. A failure leaves the system
// uninitialized.
func (s *System) Init(capacity int) error {
	if s.pool != nil {
		return errors.New("particle system already initialized")
	}
	if capacity <= 0 {
		return errors.Errorf("invalid particle capacity %d", capacity)
	}
	if s.newGPU == nil {
		return errors.New("particle system has no GPU factory")
	}
	gpu, err := s.newGPU()
	if err != nil {
		return errors.Wrap(err, "failed to create particle GPU resources")
	}

	s.gpu = gpu
	s.pool = NewPool(capacity)
	s.renderer = NewBatchRenderer(gpu, capacity, s.blend)
	s.alive = 0
	util.LogParticlesInfo("particle system initialized",
		zap.Stringer("system", s.id),
		zap.Int("capacity", capacity),
		zap.Stringer("blend", s.blend),
	)
	return nil
}

// Shutdown releases the device resources and drops all particles. Calling it again, or on a
// system that was never initialized, does nothing.
func (s *System) Shutdown() {
	if s.pool == nil {
		return
	}
	s.gpu.Release()
	s.gpu = nil
	s.renderer = nil
	s.pool = nil
	s.alive = 0
	util.LogParticlesInfo("particle system shut down", zap.Stringer("system", s.id))
}

// Emit spawns particles for one emitter over dt seconds. Particles that do not fit into the
// pool are dropped silently.
func (s *System) Emit(cfg EmitterConfig, dt float32) {
	if s.pool == nil {
		return
	}
	spawned, dropped := s.emitter.Emit(s.pool, cfg, dt)
	s.alive += spawned
	s.spawned += uint64(spawned)
	if dropped > 0 {
		s.dropped += uint64(dropped)
		util.LogParticlesDebug("pool exhausted, particles dropped",
			zap.Stringer("system", s.id),
			zap.Int("dropped", dropped),
		)
	}
}

// Update advances all live particles by dt and recounts the survivors.
func (s *System) Update(dt float32) {
	if s.pool == nil {
		return
	}
	s.alive = Integrate(s.pool, dt)
}

// Draw renders the live particles as billboards facing the camera described by cameraRight and
// cameraUp.
func (s *System) Draw(viewProjection mgl32.Mat4, cameraRight, cameraUp mgl32.Vec3) {
	if s.pool == nil || s.alive == 0 {
		return
	}
	s.renderer.Draw(s.pool, s.alive, viewProjection, cameraRight, cameraUp)
}

func (s *System) AliveCount() int {
	return s.alive
}

func (s *System) Capacity() int {
	if s.pool == nil {
		return 0
	}
	return s.pool.Cap()
}

func (s *System) ID() uuid.UUID {
	return s.id
}

// Particles returns a copy of all slots, dead ones included.
func (s *System) Particles() []Particle {
	if s.pool == nil {
		return nil
	}
	return append([]Particle(nil), s.pool.slots...)
}

type Stats struct {
	Alive         int
	Capacity      int
	Spawned       uint64
	Dropped       uint64
	InstanceBytes int
	DrawCalls     uint64
}

func (s *System) Stats() Stats {
	st := Stats{
		Alive:    s.alive,
		Capacity: s.Capacity(),
		Spawned:  s.spawned,
		Dropped:  s.dropped,
	}
	if s.renderer != nil {
		st.InstanceBytes = s.renderer.CapacityBytes()
		st.DrawCalls = s.renderer.DrawCalls()
	}
	return st
}
