package particles

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var presets = map[string]EmitterConfig{
	"fire": {
		Direction:    mgl32.Vec3{0, 1, 0},
		SpreadAngle:  15,
		MinSpeed:     2,
		MaxSpeed:     5,
		MinLife:      0.5,
		MaxLife:      1.5,
		MinSize:      0.05,
		MaxSize:      0.3,
		ColorStart:   mgl32.Vec3{1, 0.6, 0.1},
		ColorEnd:     mgl32.Vec3{0.5, 0.1, 0},
		Gravity:      2,
		EmitRate:     80,
		MaxParticles: 300,
	},
	"smoke": {
		Direction:    mgl32.Vec3{0, 1, 0},
		SpreadAngle:  60,
		MinSpeed:     0.5,
		MaxSpeed:     1.5,
		MinLife:      2,
		MaxLife:      5,
		MinSize:      0.5,
		MaxSize:      2,
		ColorStart:   mgl32.Vec3{0.5, 0.5, 0.5},
		ColorEnd:     mgl32.Vec3{0.3, 0.3, 0.3},
		Gravity:      0.5,
		EmitRate:     30,
		MaxParticles: 200,
	},
	"sparks": {
		Direction:    mgl32.Vec3{0, 1, 0},
		SpreadAngle:  180,
		MinSpeed:     5,
		MaxSpeed:     15,
		MinLife:      0.2,
		MaxLife:      0.8,
		MinSize:      0.01,
		MaxSize:      0.05,
		ColorStart:   mgl32.Vec3{1, 0.9, 0.6},
		ColorEnd:     mgl32.Vec3{1, 0.3, 0},
		Gravity:      -9.8,
		EmitRate:     200,
		MaxParticles: 200,
	},
	"snow": {
		// straight down relies on coneBasis switching to world forward near vertical
		Direction:    mgl32.Vec3{0, -1, 0},
		SpreadAngle:  12,
		MinSpeed:     0.2,
		MaxSpeed:     0.8,
		MinLife:      3,
		MaxLife:      8,
		MinSize:      0.1,
		MaxSize:      0.15,
		ColorStart:   mgl32.Vec3{1, 1, 1},
		ColorEnd:     mgl32.Vec3{0.8, 0.85, 1},
		Gravity:      -0.5,
		EmitRate:     40,
		MaxParticles: 400,
	},
}

// Preset returns a copy of the named built-in emitter, positioned at the origin.
func Preset(name string) (EmitterConfig, bool) {
	cfg, ok := presets[name]
	return cfg, ok
}

// PresetNames lists the built-in emitters in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
