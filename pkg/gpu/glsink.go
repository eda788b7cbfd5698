package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"openglhelper"
)

// GLBufferSink adapts a family of openglhelper.BufferObject vertex/index
// buffer pairs to the BufferSink interface, so IndexedBufferManager can write
// chunk meshes straight into real GPU buffers without knowing anything about
// OpenGL itself.
type GLBufferSink struct {
	VertexBuffers []*openglhelper.BufferObject
	IndexBuffers  []*openglhelper.BufferObject
}

// NewGLBufferSink allocates numBuffers vertex/index buffer pairs, each
// vertex buffer vertexBufferBytes long and each index buffer
// indexBufferBytes long.
func NewGLBufferSink(numBuffers int, vertexBufferBytes, indexBufferBytes int) *GLBufferSink {
	sink := &GLBufferSink{
		VertexBuffers: make([]*openglhelper.BufferObject, numBuffers),
		IndexBuffers:  make([]*openglhelper.BufferObject, numBuffers),
	}
	for i := 0; i < numBuffers; i++ {
		sink.VertexBuffers[i] = openglhelper.NewBufferObject(gl.ARRAY_BUFFER, vertexBufferBytes, nil, openglhelper.DynamicDraw)
		sink.IndexBuffers[i] = openglhelper.NewBufferObject(gl.ELEMENT_ARRAY_BUFFER, indexBufferBytes, nil, openglhelper.DynamicDraw)
	}
	return sink
}

// WriteVertexBuffer implements BufferSink by writing straight into the
// backing OpenGL vertex buffer's sub-data range.
func (s *GLBufferSink) WriteVertexBuffer(bufferIdx int, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	s.VertexBuffers[bufferIdx].UpdateSubData(offset, len(data), unsafe.Pointer(&data[0]))
}

// WriteIndexBuffer implements BufferSink by writing straight into the
// backing OpenGL index buffer's sub-data range.
func (s *GLBufferSink) WriteIndexBuffer(bufferIdx int, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	s.IndexBuffers[bufferIdx].UpdateSubData(offset, len(data), unsafe.Pointer(&data[0]))
}

// ZeroIndexRegion overwrites a freed slot's index region with zeros, so a
// stale index left over from an evicted mesh can never again be read by a
// draw call that still covers this slot's byte range.
func (s *GLBufferSink) ZeroIndexRegion(bufferIdx int, offset, length int) {
	if length == 0 {
		return
	}
	zeros := make([]byte, length)
	s.IndexBuffers[bufferIdx].UpdateSubData(offset, length, unsafe.Pointer(&zeros[0]))
}

// Delete releases every underlying GPU buffer.
func (s *GLBufferSink) Delete() {
	for _, b := range s.VertexBuffers {
		b.Delete()
	}
	for _, b := range s.IndexBuffers {
		b.Delete()
	}
}
