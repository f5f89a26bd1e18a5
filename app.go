package main

import (
	"fmt"
	"time"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/emberglow/config"
	"github.com/memmaker/emberglow/engine/glhf"
	"github.com/memmaker/emberglow/engine/particles"
	"github.com/memmaker/emberglow/engine/util"
	"github.com/memmaker/emberglow/engine/window"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type emitterInstance struct {
	name   string
	config particles.EmitterConfig
	paused bool
}

type ParticleDemo struct {
	*window.GlApplication
	name     string
	camera   *util.OrbitCamera
	system   *particles.System
	sprite   *glhf.Texture
	emitters []emitterInstance
	timer    *util.Timer
	frames   uint64
}

func runDemo(cfg *config.Config) error {
	var runErr error
	mainthread.Call(func() {
		runErr = runOnMainThread(cfg)
	})
	return runErr
}

func runOnMainThread(cfg *config.Config) error {
	win, terminate, err := window.InitOpenGL(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, cfg.Window.VSync)
	if err != nil {
		return err
	}

	demo, err := newParticleDemo(cfg, win, terminate)
	if err != nil {
		terminate()
		return err
	}
	demo.Run()
	return nil
}

func newParticleDemo(cfg *config.Config, win *glfw.Window, terminate func()) (*ParticleDemo, error) {
	blend, err := particles.ParseBlendMode(cfg.Particles.Blend)
	if err != nil {
		return nil, err
	}

	var sprite *glhf.Texture
	if cfg.Particles.Sprite != "" {
		sprite, err = glhf.LoadTexture(cfg.Particles.Sprite)
		if err != nil {
			return nil, err
		}
	}

	seed := cfg.Particles.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	system := particles.NewSystem(glhf.NewParticleGPU(sprite), particles.WithSeed(seed), particles.WithBlendMode(blend))
	if err := system.Init(cfg.Capacity()); err != nil {
		if sprite != nil {
			sprite.Release()
		}
		return nil, errors.Wrap(err, "failed to start particle system")
	}

	emitters := make([]emitterInstance, 0, len(cfg.Emitters))
	for _, entry := range cfg.Emitters {
		emitterConfig, err := entry.Resolve()
		if err != nil {
			system.Shutdown()
			return nil, err
		}
		emitters = append(emitters, emitterInstance{name: entry.Name, config: emitterConfig})
	}

	glApp := &window.GlApplication{
		Window:       win,
		WindowWidth:  cfg.Window.Width,
		WindowHeight: cfg.Window.Height,
	}
	win.SetKeyCallback(glApp.KeyCallback)

	demo := &ParticleDemo{
		GlApplication: glApp,
		name:          cfg.Window.Title,
		camera:        util.NewOrbitCamera(cfg.Window.Width, cfg.Window.Height, cfg.Camera.Distance, cfg.Camera.Height, cfg.Camera.OrbitSpeed),
		system:        system,
		sprite:        sprite,
		emitters:      emitters,
		timer:         util.NewTimer(),
	}
	demo.camera.SetTarget(mgl32.Vec3{0, 1, 0})
	demo.UpdateFunc = demo.Update
	demo.DrawFunc = demo.Draw
	demo.TitleFunc = demo.title
	demo.KeyHandler = demo.handleKeyEvents
	demo.TerminateFunc = func() {
		demo.shutdown()
		terminate()
	}

	util.LogSystemInfo("demo started",
		zap.Int("emitters", len(emitters)),
		zap.Int("capacity", system.Capacity()),
		zap.Uint64("seed", seed),
	)
	return demo, nil
}

func (d *ParticleDemo) Update(elapsed float64) {
	dt := float32(elapsed)
	d.camera.Update(elapsed)

	stopEmit := d.timer.Start("emit")
	for _, emitter := range d.emitters {
		if emitter.paused {
			continue
		}
		d.system.Emit(emitter.config, dt)
	}
	stopEmit()

	stopUpdate := d.timer.Start("update")
	d.system.Update(dt)
	stopUpdate()
}

func (d *ParticleDemo) Draw(elapsed float64) {
	right, up := d.camera.GetBasis()

	stopDraw := d.timer.Start("draw")
	d.system.Draw(d.camera.GetProjectionViewMatrix(), right, up)
	stopDraw()

	if err := glhf.CheckError("particle draw"); err != nil {
		util.LogGlError("draw failed", zap.Error(err))
	}

	d.frames++
	if d.frames%600 == 0 {
		stats := d.system.Stats()
		util.LogSystemInfo("frame stats",
			zap.Int("alive", stats.Alive),
			zap.Uint64("spawned", stats.Spawned),
			zap.Uint64("dropped", stats.Dropped),
			zap.Int("instanceBytes", stats.InstanceBytes),
			zap.String("timings", d.timer.String()),
		)
		d.timer.Reset()
	}
}

func (d *ParticleDemo) title() string {
	return fmt.Sprintf("%s | alive %d/%d", d.name, d.system.AliveCount(), d.system.Capacity())
}

func (d *ParticleDemo) handleKeyEvents(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch {
	case key == glfw.KeyEscape:
		d.Window.SetShouldClose(true)
	case key >= glfw.Key1 && key <= glfw.Key9:
		index := int(key - glfw.Key1)
		if index < len(d.emitters) {
			d.emitters[index].paused = !d.emitters[index].paused
			util.LogSystemInfo("emitter toggled",
				zap.String("emitter", d.emitters[index].name),
				zap.Bool("paused", d.emitters[index].paused),
			)
		}
	}
}

func (d *ParticleDemo) shutdown() {
	d.system.Shutdown()
	if d.sprite != nil {
		d.sprite.Release()
	}
}
