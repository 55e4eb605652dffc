package property

import (
	"github.com/connman-go/connman/pkg/variant"
)

// Iter walks the elements of an array or flattened dict once. It is not
// safe for concurrent use; create a new one to start over.
type Iter struct {
	elems []variant.Value
	pos   int
}

// NewIter returns an iterator over v, which must be an array or a dict.
func NewIter(v variant.Value) (*Iter, bool) {
	elems, ok := v.Elements()
	if !ok {
		return nil, false
	}
	return &Iter{elems: elems}, true
}

// Next returns the next element.
func (it *Iter) Next() (variant.Value, bool) {
	if it.pos >= len(it.elems) {
		return variant.Value{}, false
	}
	v := it.elems[it.pos]
	it.pos++
	return v, true
}

// NextPair reads a string key and the element following it. Iteration
// ends when the elements run out, when a key is not a string, or when a
// key has no value after it.
func (it *Iter) NextPair() (string, variant.Value, bool) {
	k, ok := it.Next()
	if !ok {
		return "", variant.Value{}, false
	}
	key, ok := k.AsString()
	if !ok {
		it.pos = len(it.elems)
		return "", variant.Value{}, false
	}
	v, ok := it.Next()
	if !ok {
		return "", variant.Value{}, false
	}
	return key, v, true
}

// Remaining returns the number of elements not yet consumed.
func (it *Iter) Remaining() int {
	return len(it.elems) - it.pos
}
