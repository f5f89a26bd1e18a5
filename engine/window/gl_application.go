package window

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/emberglow/engine/glhf"
	"github.com/memmaker/emberglow/engine/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type GlApplication struct {
	Window          *glfw.Window
	TerminateFunc   func()
	UpdateFunc      func(elapsed float64)
	DrawFunc        func(elapsed float64)
	TitleFunc       func() string
	KeyHandler      func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	WindowWidth     int
	WindowHeight    int
	ticks           uint64
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(
			key,
			scancode,
			action,
			mods,
		)
	}
}

func (a *GlApplication) Run() {
	defer a.TerminateFunc()
	previousTime := glfw.GetTime()
	shouldQuit := false
	for !shouldQuit {
		if a.Window.ShouldClose() {
			shouldQuit = true
		}

		glhf.Clear(0, 0, 0, 1)

		time := glfw.GetTime()
		elapsed := time - previousTime
		previousTime = time
		a.UpdateFunc(elapsed)

		a.DrawFunc(elapsed)

		if elapsed > 0 {
			a.FramesPerSecond = 1.0 / elapsed
		}
		if a.ticks%60 == 0 {
			sixtyTicksAverage := a.FPSRunningAvg
			title := fmt.Sprintf("FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f) / Elapsed: %.3f", a.FramesPerSecond, sixtyTicksAverage, a.FPSMin, a.FPSMax, elapsed*1000)
			if a.TitleFunc != nil {
				title = a.TitleFunc() + " | " + title
			}
			a.Window.SetTitle(title)
			a.FPSRunningAvg = 0 + a.FramesPerSecond*(1.0/60.0)
			a.FPSMin = math.MaxFloat64
			a.FPSMax = 0
		} else {
			a.FPSRunningAvg = a.FPSRunningAvg + a.FramesPerSecond*(1.0/60.0)
			if a.FramesPerSecond < a.FPSMin {
				a.FPSMin = a.FramesPerSecond
			}
			if a.FramesPerSecond > a.FPSMax {
				a.FPSMax = a.FramesPerSecond
			}
		}

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

// InitOpenGL opens a window with a 4.1 core context and makes it current. The returned
// function terminates glfw.
func InitOpenGL(title string, width, height int, vsync bool) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize glfw")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "failed to create window")
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := glhf.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, err
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	util.LogGlInfo("OpenGL context created", zap.String("version", version))

	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.DEPTH_TEST)

	return win, func() {
		glfw.Terminate()
	}, nil
}
