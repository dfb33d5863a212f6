package object

// Tracked attaches a dirty flag to an object for workflows that edit an
// object in place before writing it back. The variants themselves carry no
// mutation state.
type Tracked struct {
	Object Object
	dirty  bool
}

// Track wraps obj. The object starts clean.
func Track(obj Object) *Tracked {
	return &Tracked{Object: obj}
}

// MarkDirty records that the object has unsaved changes.
func (t *Tracked) MarkDirty() { t.dirty = true }

// Dirty reports whether the object has unsaved changes.
func (t *Tracked) Dirty() bool { return t.dirty }

// Clean clears the dirty flag, typically after a successful write.
func (t *Tracked) Clean() { t.dirty = false }
