package chash

import "fmt"

// FailAllocAfter lets the first n slot allocations succeed and fails the
// rest with ErrAllocationFailure.
func FailAllocAfter(n int) Option {
	return func(o *options) {
		calls := 0
		o.alloc = func(size int) ([]slot, error) {
			calls++
			if calls > n {
				return nil, fmt.Errorf("%w: injected after %d allocations", ErrAllocationFailure, n)
			}
			return makeSlots(size)
		}
	}
}

// Locate returns the slot index holding key, or -1. Chained entries report
// their primary slot.
func (t *Table) Locate(key uint16) int {
	_, idx := t.st.find(key)
	return idx
}

// ChainLen returns the number of entries hanging off slot index, the
// primary entry included.
func (t *Table) ChainLen(index int) int {
	n := 0
	for s := &t.st.slots[index]; s != nil; s = s.next {
		if s.occupied() {
			n++
		}
	}
	return n
}
