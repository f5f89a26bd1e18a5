package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

type GlFloat float32

// VertexSlice points to a portion of (or possibly whole) vertex array. It is used as a pointer,
// contrary to Go's builtin slices.
//
// Note that you need to Begin a VertexSlice before updating it's elements or drawing it.
// After you're done with it, you need to End it.
type VertexSlice[V any] struct {
	va                   *vertexArray[V]
	startIndex, endIndex int
}

// MakeVertexSlice allocates a new vertex array with specified capacity and returns a VertexSlice
// that points to it's first len elements.
//
// Note, that a vertex array is specialized for a specific shader and can't be used with another
// shader.
func MakeVertexSlice(shader *Shader, len, cap int) (*VertexSlice[GlFloat], error) {
	if len > cap {
		return nil, errors.New("failed to make vertex slice: len > cap")
	}
	va, err := newVertexArray[GlFloat](shader, cap)
	if err != nil {
		return nil, err
	}
	return &VertexSlice[GlFloat]{
		va:         va,
		startIndex: 0,
		endIndex:   len,
	}, nil
}

// VertexFormat returns the format of vertex attributes inside the underlying vertex array of this
// VertexSlice.
func (vs *VertexSlice[V]) VertexFormat() AttrFormat {
	return vs.va.format
}

// Stride returns the number of float32 elements occupied by one vertex.
func (vs *VertexSlice[V]) Stride() int {
	return vs.va.stride / 4
}

// Len returns the length of the VertexSlice (number of vertices).
func (vs *VertexSlice[V]) Len() int {
	return vs.endIndex - vs.startIndex
}

// SetVertexData sets the contents of the VertexSlice.
//
// The data is a slice of float32's, where each vertex attribute occupies a certain number of
// elements. Namely, Float occupies 1, Vec2 occupies 2, Vec3 occupies 3 and Vec4 occupies 4. The
// attribues in the data slice must be in the same order as in the vertex format of this Vertex
// Slice.
//
// If the length of vertices does not match the length of the VertexSlice, this method panics.
func (vs *VertexSlice[V]) SetVertexData(data []V) {
	if len(data)/vs.Stride() != vs.Len() {
		panic("set vertex data: wrong length of vertices")
	}
	vs.va.setVertexDataWithOffset(vs.startIndex, vs.endIndex, data)
}

// DrawInstanced draws the content of the VertexSlice once per instance of the attached
// instance buffer.
func (vs *VertexSlice[V]) DrawInstanced(instances int) {
	vs.va.drawInstanced(vs.startIndex, vs.endIndex, instances)
}

// AttachInstances wires the per-instance attributes of the buffer into this VertexSlice's
// vertex array. The VertexSlice must be bound.
func (vs *VertexSlice[V]) AttachInstances(instances *InstanceBuffer) error {
	return vs.va.attachInstances(instances)
}

// Begin binds the underlying vertex array. Calling this method is necessary before using the VertexSlice.
func (vs *VertexSlice[V]) Begin() {
	vs.va.begin()
}

// End unbinds the underlying vertex array. Call this method when you're done with VertexSlice.
func (vs *VertexSlice[V]) End() {
	vs.va.end()
}

// Release deletes the vertex array and its buffer right away.
func (vs *VertexSlice[V]) Release() {
	vs.va.release()
}

type vertexArray[V any] struct {
	vao, vbo      binder
	cap           int
	format        AttrFormat
	stride        int
	offset        []int
	shader        *Shader
	primitiveType uint32
	released      bool
}

const vertexArrayMinCap = 4

func newVertexArray[V any](shader *Shader, cap int) (*vertexArray[V], error) {
	if cap < vertexArrayMinCap {
		cap = vertexArrayMinCap
	}

	va := &vertexArray[V]{
		primitiveType: gl.TRIANGLES,
		vao: binder{
			restoreLoc: gl.VERTEX_ARRAY_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindVertexArray(obj)
			},
		},
		vbo: binder{
			restoreLoc: gl.ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ARRAY_BUFFER, obj)
			},
		},
		cap:    cap,
		format: shader.VertexFormat(),
		stride: shader.VertexFormat().Size(),
		offset: make([]int, len(shader.VertexFormat())),
		shader: shader,
	}

	offset := 0
	for i, attr := range va.format {
		switch attr.Type {
		case Float, Vec2, Vec3, Vec4:
		default:
			return nil, errors.New("failed to create vertex array: invalid attribute type")
		}
		va.offset[i] = offset
		offset += attr.Type.Size()
	}

	gl.GenVertexArrays(1, &va.vao.obj) // create a vertex array object

	va.vao.bind()

	gl.GenBuffers(1, &va.vbo.obj) // create buffer
	defer va.vbo.bind().restore()

	emptyData := make([]byte, cap*va.stride) // creaty an empty buffer of the right size
	gl.BufferData(gl.ARRAY_BUFFER, len(emptyData), gl.Ptr(emptyData), gl.STATIC_DRAW)

	if err := va.setAttributesForArray(); err != nil {
		va.vao.restore()
		return nil, err
	}

	va.vao.restore()

	if err := CheckError("failed to create vertex array"); err != nil {
		return nil, err
	}

	runtime.SetFinalizer(va, (*vertexArray[V]).delete)

	return va, nil
}

func (va *vertexArray[V]) setAttributesForArray() error {
	for i, attr := range va.format {
		loc := gl.GetAttribLocation(va.shader.program.obj, gl.Str(attr.Name+"\x00")) // get variable location index from shader
		if loc < 0 {
			return errors.Errorf("failed to create vertex array: shader has no attribute %q", attr.Name)
		}
		gl.VertexAttribPointerWithOffset(
			uint32(loc),
			attr.Type.Components(),
			gl.FLOAT,
			false,
			int32(va.stride),
			uintptr(va.offset[i]),
		)
		gl.EnableVertexAttribArray(uint32(loc)) // Enable and use this attribute for rendering the associated array
	}
	return nil
}

// attachInstances points the instance attributes at the instance buffer and advances them once
// per instance instead of once per vertex.
func (va *vertexArray[V]) attachInstances(ib *InstanceBuffer) error {
	ib.vbo.bind()
	defer ib.vbo.restore()

	offset := 0
	for _, attr := range ib.format {
		loc := gl.GetAttribLocation(va.shader.program.obj, gl.Str(attr.Name+"\x00"))
		if loc < 0 {
			return errors.Errorf("failed to attach instances: shader has no attribute %q", attr.Name)
		}
		gl.VertexAttribPointerWithOffset(
			uint32(loc),
			attr.Type.Components(),
			gl.FLOAT,
			false,
			int32(ib.stride),
			uintptr(offset),
		)
		gl.VertexAttribDivisor(uint32(loc), 1)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += attr.Type.Size()
	}
	return CheckError("failed to attach instances")
}

func (va *vertexArray[V]) delete() {
	if va.released {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteVertexArrays(1, &va.vao.obj)
		gl.DeleteBuffers(1, &va.vbo.obj)
	})
}

func (va *vertexArray[V]) release() {
	if va.released {
		return
	}
	va.released = true
	runtime.SetFinalizer(va, nil)
	gl.DeleteVertexArrays(1, &va.vao.obj)
	gl.DeleteBuffers(1, &va.vbo.obj)
}

func (va *vertexArray[V]) begin() {
	va.vao.bind()
	va.vbo.bind()
}

func (va *vertexArray[V]) end() {
	va.vbo.restore()
	va.vao.restore()
}

func (va *vertexArray[V]) drawInstanced(startIndex, endIndex, instances int) {
	gl.DrawArraysInstanced(va.primitiveType, int32(startIndex), int32(endIndex-startIndex), int32(instances))
}

func (va *vertexArray[V]) setVertexDataWithOffset(i, j int, data []V) {
	if j-i == 0 {
		// avoid setting 0 bytes of buffer data
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, i*va.stride, len(data)*4, gl.Ptr(data))
}
