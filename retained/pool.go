package retained

import "sync"

// ============================================================================
// Child Snapshots
// ============================================================================
//
// Routing, drawing, updating and layout call into widget code that may add,
// remove or reorder siblings. Those passes walk a copy of the child sequence
// taken before the first callback, and skip any entry whose parent is no
// longer the container being walked:
//
//   children := c.snapshot()
//   defer releaseWidgetSlice(children)
//   for _, w := range children {
//       if !c.owns(w) { continue }
//       ...
//   }
//
// The copies come from a pool since every frame takes one per container.

// maxPooledSnapshot caps the capacity kept in the pool.
const maxPooledSnapshot = 256

var snapshotPool = sync.Pool{
	New: func() any { return make([]Widget, 0, 16) },
}

// snapshot copies the current child sequence into a pooled slice. The caller
// must hand it back with releaseWidgetSlice.
func (c *Container) snapshot() []Widget {
	buf := snapshotPool.Get().([]Widget)
	if cap(buf) < len(c.widgets) {
		snapshotPool.Put(buf)
		buf = make([]Widget, 0, len(c.widgets)*2)
	}
	return append(buf[:0], c.widgets...)
}

// releaseWidgetSlice clears a snapshot, so the pool holds no widgets alive,
// and returns it to the pool.
func releaseWidgetSlice(children []Widget) {
	if children == nil || cap(children) > maxPooledSnapshot {
		return
	}
	clear(children)
	snapshotPool.Put(children[:0])
}

// owns reports whether w is still a child of c.
func (c *Container) owns(w Widget) bool {
	return w != nil && w.Base().parent == c
}
