// Package pool implements the shared argument pool: a mutable mapping from
// argument name to value that acts as both the input source and the output
// sink for every phase of one run.
//
// A Pool is deliberately unsynchronized. Execution within a single runner is
// strictly sequential, and concurrently-running runners must each own an
// independent Pool.
package pool

import "sort"

// Pool is a shared key-value store for inter-phase data flow. Keys are only
// ever added or overwritten, never deleted. Values are untyped: any phase may
// write any value under any key, and conflicting writes are last-write-wins.
type Pool struct {
	values map[string]any
}

// New creates an empty Pool.
func New() *Pool {
	return &Pool{values: make(map[string]any)}
}

// FromMap creates a Pool seeded with a copy of the given mapping.
func FromMap(seed map[string]any) *Pool {
	p := New()
	p.Merge(seed)
	return p
}

// Get returns the value stored under name and whether it is present.
func (p *Pool) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Set stores value under name, overwriting any previous value.
func (p *Pool) Set(name string, value any) {
	p.values[name] = value
}

// Merge copies every entry of the given mapping into the pool. Existing keys
// are overwritten, new keys are added.
func (p *Pool) Merge(args map[string]any) {
	for k, v := range args {
		p.values[k] = v
	}
}

// Keys returns the pool's key set in sorted order.
func (p *Pool) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries in the pool.
func (p *Pool) Len() int {
	return len(p.values)
}
