package driver

import "github.com/turingarena/turingarena/internal/wire"

// Frame is a lexical scope of variable bindings, chained to its parent so
// a lookup climbs outward until it finds the binding or runs out of
// frames. Grounded on the reference implementation's frame model: each For
// iteration, and each callback invocation, opens a fresh child Frame so
// its index/parameters shadow anything of the same name further out, and
// is discarded once the iteration/invocation ends.
type Frame struct {
	parent  *Frame
	bindings map[string]wire.Value
}

// NewRootFrame creates the outermost Frame for a main block evaluation.
func NewRootFrame() *Frame {
	return &Frame{bindings: map[string]wire.Value{}}
}

// Child opens a new Frame nested under f.
func (f *Frame) Child() *Frame {
	return &Frame{parent: f, bindings: map[string]wire.Value{}}
}

// Bind records v under name in this frame (not climbing to parents) —
// used both for a fresh declaration and for a For/callback parameter.
func (f *Frame) Bind(name string, v wire.Value) {
	f.bindings[name] = v
}

// Lookup finds name's value, climbing to parent frames if needed.
func (f *Frame) Lookup(name string) (wire.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.bindings[name]; ok {
			return v, true
		}
	}
	return wire.Value{}, false
}

// owner climbs from f looking for the frame that already binds name,
// returning nil if no frame in the chain does.
func (f *Frame) owner(name string) *Frame {
	for cur := f; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			return cur
		}
	}
	return nil
}

// root climbs to the outermost frame in the chain.
func (f *Frame) root() *Frame {
	cur := f
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Index resolves one subscript level of an array binding by integer
// index, used when the driver needs the scalar at v[i] directly (rather
// than through the frame bound for "i" itself).
func Index(v wire.Value, i int64) (wire.Value, bool) {
	if !v.IsArray || i < 0 || int(i) >= len(v.Array) {
		return wire.Value{}, false
	}
	return v.Array[i], true
}
