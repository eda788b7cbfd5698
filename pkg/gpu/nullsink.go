package gpu

// NullSink is a BufferSink that discards every write. It lets
// IndexedBufferManager run headless — in tests, or in tools that only
// care about pool/slot bookkeeping and never stand up a real GPU device.
type NullSink struct{}

func (NullSink) WriteVertexBuffer(bufferIdx int, offset int, data []byte) {}
func (NullSink) WriteIndexBuffer(bufferIdx int, offset int, data []byte)  {}
func (NullSink) ZeroIndexRegion(bufferIdx int, offset, length int)        {}
