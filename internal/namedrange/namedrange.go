// Package namedrange resolves symbolic start/end bounds against an ordered
// list of named items into a concrete index range.
//
// Bounds come in three flavors: open (the start or end of the list), a plain
// integer index, or a name looked up case-insensitively against the list.
// Ranges follow the ordinary exclusive-upper convention with one intentional
// exception: an end bound given by *name* is end-inclusive. Asking for
// "B" through "D" over [A B C D E] yields indexes for [B C D], not [B C].
//
// Stepped ranges are not supported; the step is always 1.
package namedrange

import "strings"

type boundKind int

const (
	boundOpen boundKind = iota
	boundIndex
	boundName
)

// Bound is a single range endpoint specifier. The zero value is an open
// bound, meaning "start of the list" as a start and "end of the list" as
// an end.
type Bound struct {
	kind  boundKind
	index int
	name  string
}

// Open returns a bound that resolves to the start or end of the list,
// depending on which side of the range it is used on.
func Open() Bound {
	return Bound{}
}

// Index returns a bound fixed at a plain integer index. Integer bounds keep
// ordinary slicing semantics: an Index end is exclusive.
func Index(i int) Bound {
	return Bound{kind: boundIndex, index: i}
}

// Name returns a bound resolved by case-insensitive name lookup. A Name end
// is inclusive.
func Name(s string) Bound {
	return Bound{kind: boundName, name: s}
}

// IsOpen reports whether the bound is open.
func (b Bound) IsOpen() bool {
	return b.kind == boundOpen
}

// Resolve maps the start and end bounds onto the given name list and returns
// the concrete [lo, hi) index range. Name lookups are case-insensitive exact
// matches, first match wins; a failed lookup returns a *NotFoundError. When
// the end bound is a name the resolved index is incremented by one after
// lookup, making name-bounded ranges end-inclusive. Integer bounds clamp to
// the list like ordinary slice indexes. If hi ends up before lo, Resolve
// returns an *InvalidRangeError.
func Resolve(names []string, start, end Bound) (lo, hi int, err error) {
	switch start.kind {
	case boundOpen:
		lo = 0
	case boundIndex:
		lo = clamp(start.index, len(names))
	case boundName:
		lo = search(names, start.name)
		if lo < 0 {
			return 0, 0, &NotFoundError{Name: start.name}
		}
	}

	switch end.kind {
	case boundOpen:
		hi = len(names)
	case boundIndex:
		hi = clamp(end.index, len(names))
	case boundName:
		hi = search(names, end.name)
		if hi < 0 {
			return 0, 0, &NotFoundError{Name: end.name}
		}
		// Unlike ordinary slices, name-bounded ranges include the end item.
		hi++
	}

	if hi < lo {
		return 0, 0, &InvalidRangeError{Start: start, End: end, Lo: lo, Hi: hi}
	}
	return lo, hi, nil
}

// search returns the index of the first case-insensitive match for name,
// or -1 if there is none.
func search(names []string, name string) int {
	for i, candidate := range names {
		if strings.EqualFold(candidate, name) {
			return i
		}
	}
	return -1
}

// clamp confines a raw integer index to [0, n], so out-of-range integer
// bounds shrink to the list rather than erroring.
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
