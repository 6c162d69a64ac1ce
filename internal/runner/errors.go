package runner

import (
	"fmt"
	"strings"

	"github.com/crouilla/phaserunner/internal/phase"
)

// DuplicatePhaseError reports an attempt to register a phase under a name
// already taken, compared case-insensitively.
type DuplicatePhaseError struct {
	Name string
}

func (e *DuplicatePhaseError) Error() string {
	return fmt.Sprintf("phase %q already exists in runner, cannot add more than once", e.Name)
}

func (e *DuplicatePhaseError) Unwrap() error { return phase.ErrDefinition }

// UnknownPhaseError reports a range bound naming a phase that is not
// registered.
type UnknownPhaseError struct {
	Name  string
	Known []string
}

func (e *UnknownPhaseError) Error() string {
	return fmt.Sprintf("phase %q not in registered phases: %s", e.Name, strings.Join(e.Known, ", "))
}
