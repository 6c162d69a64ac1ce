package namedrange

import "fmt"

// NotFoundError reports a name bound that matched no item in the list.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("name %q not found in list", e.Name)
}

// InvalidRangeError reports a resolved range whose end precedes its start.
type InvalidRangeError struct {
	Start, End Bound
	Lo, Hi     int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("start bound %s must not come after end bound %s (resolved %d..%d)",
		e.Start.describe(), e.End.describe(), e.Lo, e.Hi)
}

// describe renders a bound for error messages.
func (b Bound) describe() string {
	switch b.kind {
	case boundIndex:
		return fmt.Sprintf("index %d", b.index)
	case boundName:
		return fmt.Sprintf("%q", b.name)
	default:
		return "open"
	}
}
