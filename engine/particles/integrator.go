package particles

import "github.com/memmaker/emberglow/engine/util"

// lifeEpsilon guards the life ratio against near-zero lifetimes.
const lifeEpsilon = 1e-6

// Integrate advances every live particle by dt with forward Euler: position moves by the
// velocity from before this step, then gravity is applied to the vertical velocity. Color is
// interpolated by the life ratio at the start of the step. It returns how many particles are
// still alive afterwards.
func Integrate(pool *Pool, dt float32) int {
	alive := 0
	for i := range pool.slots {
		p := &pool.slots[i]
		if !p.Alive() {
			continue
		}

		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Velocity[1] += p.Gravity * dt

		p.Color = util.Lerp3(p.ColorStart, p.ColorEnd, lifeRatio(p))

		p.Life -= dt
		if p.Alive() {
			alive++
		}
	}
	return alive
}

// lifeRatio is 0 at spawn and approaches 1 at death.
func lifeRatio(p *Particle) float32 {
	if p.MaxLife <= lifeEpsilon {
		return 1
	}
	return 1 - p.Life/p.MaxLife
}

// fade is the remaining life fraction used as render alpha.
func fade(p *Particle) float32 {
	if p.MaxLife <= lifeEpsilon {
		return 0
	}
	return p.Life / p.MaxLife
}
