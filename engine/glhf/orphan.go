package glhf

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// Init initializes the OpenGL function pointers. A context must be current on the calling
// thread.
func Init() error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize OpenGL")
	}
	return nil
}

// Clear clears the current framebuffer or window with the given color.
func Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// CheckError returns the pending OpenGL error, if any, tagged with what was being done.
func CheckError(what string) error {
	errorCodeOfGL := gl.GetError()
	if errorCodeOfGL != gl.NO_ERROR {
		return errors.Errorf("%s: GL error 0x%x", what, errorCodeOfGL)
	}
	return nil
}

// BlendState is a snapshot of the blending and depth-write state.
type BlendState struct {
	blendEnabled bool
	srcRGB       int32
	dstRGB       int32
	srcAlpha     int32
	dstAlpha     int32
	depthWrite   bool
}

// CaptureBlendState reads the current blend enable flag, blend function and depth mask.
func CaptureBlendState() BlendState {
	var s BlendState
	s.blendEnabled = gl.IsEnabled(gl.BLEND)
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &s.srcRGB)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &s.dstRGB)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.srcAlpha)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.dstAlpha)
	gl.GetBooleanv(gl.DEPTH_WRITEMASK, &s.depthWrite)
	return s
}

// Restore puts the captured state back.
func (s BlendState) Restore() {
	gl.BlendFuncSeparate(uint32(s.srcRGB), uint32(s.dstRGB), uint32(s.srcAlpha), uint32(s.dstAlpha))
	if s.blendEnabled {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	gl.DepthMask(s.depthWrite)
}

// SetBlending enables blending with the given factors and toggles depth writes.
func SetBlending(src, dst uint32, depthWrite bool) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(src, dst)
	gl.DepthMask(depthWrite)
}
