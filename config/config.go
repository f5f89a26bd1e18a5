package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/emberglow/engine/particles"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window    WindowConfig    `toml:"window" yaml:"window"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
	Particles ParticlesConfig `toml:"particles" yaml:"particles"`
	Camera    CameraConfig    `toml:"camera" yaml:"camera"`
	Emitters  []EmitterEntry  `toml:"emitters" yaml:"emitters"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type ParticlesConfig struct {
	Seed     uint64 `toml:"seed" yaml:"seed"`         // 0 picks a seed from the clock
	Capacity int    `toml:"capacity" yaml:"capacity"` // 0 sums the emitters' max_particles
	Blend    string `toml:"blend" yaml:"blend"`       // "additive" or "alpha"
	Sprite   string `toml:"sprite" yaml:"sprite"`     // optional image path
}

type CameraConfig struct {
	Distance   float32 `toml:"distance" yaml:"distance"`
	Height     float32 `toml:"height" yaml:"height"`
	OrbitSpeed float32 `toml:"orbit_speed" yaml:"orbit_speed"` // radians per second
}

// EmitterEntry names either a built-in preset or a full emitter definition, moved by Offset.
type EmitterEntry struct {
	Name    string                   `toml:"name" yaml:"name"`
	Preset  string                   `toml:"preset" yaml:"preset"`
	Offset  mgl32.Vec3               `toml:"offset" yaml:"offset"`
	Emitter *particles.EmitterConfig `toml:"emitter" yaml:"emitter"`
}

// Resolve produces the emitter configuration for this entry.
func (e EmitterEntry) Resolve() (particles.EmitterConfig, error) {
	var cfg particles.EmitterConfig
	switch {
	case e.Emitter != nil:
		cfg = *e.Emitter
	case e.Preset != "":
		preset, ok := particles.Preset(e.Preset)
		if !ok {
			return cfg, errors.Errorf("emitter %q: unknown preset %q (known: %s)", e.Name, e.Preset, strings.Join(particles.PresetNames(), ", "))
		}
		cfg = preset
	default:
		return cfg, errors.Errorf("emitter %q: needs a preset or an emitter table", e.Name)
	}
	cfg.Position = cfg.Position.Add(e.Offset)
	return cfg, nil
}

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		// explicit emitters replace the default list instead of merging into it
		cfg.Emitters = nil
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	case ".yaml", ".yml":
		cfg.Emitters = nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	default:
		return nil, errors.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	if len(cfg.Emitters) == 0 {
		cfg.Emitters = defaults().Emitters
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "emberglow",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Particles: ParticlesConfig{
			Blend: "additive",
		},
		Camera: CameraConfig{
			Distance:   8,
			Height:     3,
			OrbitSpeed: 0.3,
		},
		Emitters: []EmitterEntry{
			{Name: "campfire", Preset: "fire"},
		},
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Particles.Capacity < 0 {
		return errors.Errorf("particles.capacity %d must not be negative", c.Particles.Capacity)
	}
	if _, err := particles.ParseBlendMode(c.Particles.Blend); err != nil {
		return errors.Wrap(err, "particles.blend")
	}
	for _, entry := range c.Emitters {
		emitter, err := entry.Resolve()
		if err != nil {
			return err
		}
		if err := validateEmitter(entry.Name, emitter); err != nil {
			return err
		}
	}
	return nil
}

func validateEmitter(name string, e particles.EmitterConfig) error {
	switch {
	case e.EmitRate < 0:
		return errors.Errorf("emitter %q: emit_rate %g must not be negative", name, e.EmitRate)
	case e.MinLife <= 0:
		return errors.Errorf("emitter %q: min_life %g must be positive", name, e.MinLife)
	case e.MinLife > e.MaxLife:
		return errors.Errorf("emitter %q: min_life %g exceeds max_life %g", name, e.MinLife, e.MaxLife)
	case e.MinSpeed > e.MaxSpeed:
		return errors.Errorf("emitter %q: min_speed %g exceeds max_speed %g", name, e.MinSpeed, e.MaxSpeed)
	case e.MinSize > e.MaxSize:
		return errors.Errorf("emitter %q: min_size %g exceeds max_size %g", name, e.MinSize, e.MaxSize)
	case e.SpreadAngle < 0 || e.SpreadAngle > 180:
		return errors.Errorf("emitter %q: spread_angle %g outside [0, 180]", name, e.SpreadAngle)
	}
	return nil
}

// Capacity is the configured pool size, or the sum of the emitters' MaxParticles when unset.
func (c *Config) Capacity() int {
	if c.Particles.Capacity > 0 {
		return c.Particles.Capacity
	}
	total := 0
	for _, entry := range c.Emitters {
		emitter, err := entry.Resolve()
		if err != nil {
			continue
		}
		total += emitter.MaxParticles
	}
	if total <= 0 {
		total = particles.DefaultEmitterConfig().MaxParticles
	}
	return total
}
