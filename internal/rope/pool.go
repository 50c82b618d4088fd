package rope

import "sync"

// segmentPool recycles segmentNode allocations via sync.Pool so a
// burst of small edits doesn't hand the GC a fresh node per edit.
// Not wired into the hot insert/delete path by default; callers that
// churn through many short-lived nodes can opt in explicitly.
type segmentPool struct {
	leafPool     sync.Pool
	internalPool sync.Pool
}

// defaultSegmentPool is a package-level node pool. No rope operation
// draws from it.
var defaultSegmentPool = newSegmentPool()

// newSegmentPool creates a new node pool.
func newSegmentPool() *segmentPool {
	return &segmentPool{
		leafPool: sync.Pool{
			New: func() interface{} {
				return &segmentNode{
					height: 0,
					chunks: make([]span, 0, maxSpansPerLeaf),
				}
			},
		},
		internalPool: sync.Pool{
			New: func() interface{} {
				return &segmentNode{
					height:         1,
					children:       make([]*segmentNode, 0, maxBranchChildren),
					childSummaries: make([]TextSummary, 0, maxBranchChildren),
				}
			},
		},
	}
}

// GetLeaf retrieves a leaf node from the pool.
// The node is reset to empty state.
func (p *segmentPool) GetLeaf() *segmentNode {
	n := p.leafPool.Get().(*segmentNode)
	n.height = 0
	n.summary = TextSummary{}
	n.chunks = n.chunks[:0]
	n.children = nil
	n.childSummaries = nil
	return n
}

// GetInternal retrieves an internal node from the pool.
// The node is reset to empty state.
func (p *segmentPool) GetInternal(height uint8) *segmentNode {
	n := p.internalPool.Get().(*segmentNode)
	n.height = height
	n.summary = TextSummary{}
	n.chunks = nil
	n.children = n.children[:0]
	n.childSummaries = n.childSummaries[:0]
	return n
}

// PutLeaf returns a leaf node to the pool for reuse.
// The node should not be used after calling this method.
func (p *segmentPool) PutLeaf(n *segmentNode) {
	if n == nil || !n.IsLeaf() {
		return
	}
	// Clear references to allow GC of chunk data
	for i := range n.chunks {
		n.chunks[i] = span{}
	}
	n.chunks = n.chunks[:0]
	p.leafPool.Put(n)
}

// PutInternal returns an internal node to the pool for reuse.
// The node should not be used after calling this method.
func (p *segmentPool) PutInternal(n *segmentNode) {
	if n == nil || n.IsLeaf() {
		return
	}
	// Clear references to allow GC of children
	for i := range n.children {
		n.children[i] = nil
	}
	n.children = n.children[:0]
	n.childSummaries = n.childSummaries[:0]
	p.internalPool.Put(n)
}

// Put returns a node to the appropriate pool based on its type.
func (p *segmentPool) Put(n *segmentNode) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		p.PutLeaf(n)
	} else {
		p.PutInternal(n)
	}
}

// spanSlicePool provides efficient allocation of chunk slices.
var spanSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]span, 0, maxSpansPerLeaf*2)
		return &s
	},
}

// getSpanSlice retrieves a chunk slice from the pool.
func getSpanSlice() *[]span {
	s := spanSlicePool.Get().(*[]span)
	*s = (*s)[:0]
	return s
}

// putSpanSlice returns a chunk slice to the pool.
func putSpanSlice(s *[]span) {
	if s == nil {
		return
	}
	// Clear references
	for i := range *s {
		(*s)[i] = span{}
	}
	*s = (*s)[:0]
	spanSlicePool.Put(s)
}

// nodeSlicePool provides efficient allocation of node pointer slices.
var nodeSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]*segmentNode, 0, maxBranchChildren*2)
		return &s
	},
}

// getNodeSlice retrieves a node slice from the pool.
func getNodeSlice() *[]*segmentNode {
	s := nodeSlicePool.Get().(*[]*segmentNode)
	*s = (*s)[:0]
	return s
}

// putNodeSlice returns a node slice to the pool.
func putNodeSlice(s *[]*segmentNode) {
	if s == nil {
		return
	}
	// Clear references
	for i := range *s {
		(*s)[i] = nil
	}
	*s = (*s)[:0]
	nodeSlicePool.Put(s)
}

// byteBufferPool provides efficient allocation of string builders.
var byteBufferPool = sync.Pool{
	New: func() interface{} {
		return new(byteBuffer)
	},
}

// byteBuffer wraps strings.Builder for pooling.
// We use a wrapper because strings.Builder has specific reset requirements.
type byteBuffer struct {
	buf []byte
}

// getByteBuffer retrieves a string builder from the pool.
// Returns a slice that can be appended to.
func getByteBuffer(capacity int) *byteBuffer {
	w := byteBufferPool.Get().(*byteBuffer)
	if cap(w.buf) < capacity {
		w.buf = make([]byte, 0, capacity)
	} else {
		w.buf = w.buf[:0]
	}
	return w
}

// putByteBuffer returns a string builder to the pool.
func putByteBuffer(w *byteBuffer) {
	if w == nil {
		return
	}
	// Only keep reasonably sized buffers
	if cap(w.buf) <= 64*1024 {
		w.buf = w.buf[:0]
		byteBufferPool.Put(w)
	}
}

// Write appends bytes to the builder.
func (w *byteBuffer) Write(p []byte) {
	w.buf = append(w.buf, p...)
}

// WriteString appends a string to the builder.
func (w *byteBuffer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// String returns the accumulated string.
func (w *byteBuffer) String() string {
	return string(w.buf)
}

// Len returns the current length.
func (w *byteBuffer) Len() int {
	return len(w.buf)
}

// Reset clears the builder.
func (w *byteBuffer) Reset() {
	w.buf = w.buf[:0]
}
