package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// InstanceBuffer is a GPU buffer holding per-instance attributes. Its storage is only
// reallocated through Reserve; Upload writes into the existing storage.
type InstanceBuffer struct {
	vbo      binder
	format   AttrFormat
	stride   int
	capBytes int
	released bool
}

// NewInstanceBuffer creates an empty instance buffer for the given per-instance format.
func NewInstanceBuffer(format AttrFormat) *InstanceBuffer {
	ib := &InstanceBuffer{
		vbo: binder{
			restoreLoc: gl.ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ARRAY_BUFFER, obj)
			},
		},
		format: format,
		stride: format.Size(),
	}
	gl.GenBuffers(1, &ib.vbo.obj)
	runtime.SetFinalizer(ib, (*InstanceBuffer).delete)
	return ib
}

// Stride returns the size of one instance in bytes.
func (ib *InstanceBuffer) Stride() int {
	return ib.stride
}

// CapBytes returns the size of the allocated storage in bytes.
func (ib *InstanceBuffer) CapBytes() int {
	return ib.capBytes
}

// Reserve reallocates the storage to exactly byteSize bytes. Previous contents are discarded.
func (ib *InstanceBuffer) Reserve(byteSize int) {
	defer ib.vbo.bind().restore()
	gl.BufferData(gl.ARRAY_BUFFER, byteSize, nil, gl.DYNAMIC_DRAW)
	ib.capBytes = byteSize
}

// Upload writes data to the start of the buffer. The data must fit into the reserved storage.
func (ib *InstanceBuffer) Upload(data []float32) {
	if len(data) == 0 {
		return
	}
	if len(data)*SizeOfFloat32 > ib.capBytes {
		panic("upload instances: data exceeds reserved storage")
	}
	defer ib.vbo.bind().restore()
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*SizeOfFloat32, gl.Ptr(data))
}

func (ib *InstanceBuffer) delete() {
	if ib.released {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &ib.vbo.obj)
	})
}

// Release deletes the buffer right away.
func (ib *InstanceBuffer) Release() {
	if ib.released {
		return
	}
	ib.released = true
	runtime.SetFinalizer(ib, nil)
	gl.DeleteBuffers(1, &ib.vbo.obj)
}
