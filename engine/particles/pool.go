package particles

import "github.com/go-gl/mathgl/mgl32"

// Particle is one pool slot. It is alive while Life > 0.
type Particle struct {
	Position, Velocity   mgl32.Vec3
	Color                mgl32.Vec3
	ColorStart, ColorEnd mgl32.Vec3
	Size                 float32
	Life, MaxLife        float32
	Gravity              float32
}

func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Pool is a fixed number of particle slots. It never grows; when every slot is alive new
// spawns are refused.
type Pool struct {
	slots []Particle
}

func NewPool(capacity int) *Pool {
	return &Pool{slots: make([]Particle, capacity)}
}

func (p *Pool) Cap() int {
	return len(p.slots)
}

// Slot returns the particle at index i for in-place mutation.
func (p *Pool) Slot(i int) *Particle {
	return &p.slots[i]
}

// FindDeadSlot returns the lowest index whose particle is dead.
func (p *Pool) FindDeadSlot() (int, bool) {
	return p.FindDeadSlotFrom(0)
}

// FindDeadSlotFrom scans from start upwards. Callers pass the slot after the one they just
// filled, so the lowest free index still wins as long as nothing below start died meanwhile.
func (p *Pool) FindDeadSlotFrom(start int) (int, bool) {
	for i := start; i < len(p.slots); i++ {
		if !p.slots[i].Alive() {
			return i, true
		}
	}
	return -1, false
}

func (p *Pool) CountAlive() int {
	alive := 0
	for i := range p.slots {
		if p.slots[i].Alive() {
			alive++
		}
	}
	return alive
}

// Reset kills every slot.
func (p *Pool) Reset() {
	clear(p.slots)
}
