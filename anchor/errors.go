package anchor

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is.
var (
	ErrDanglingReference = errors.New("dangling reference")
	ErrCyclicReference   = errors.New("cyclic reference")
)

// DanglingReferenceError is returned when an anchor references a node or anchor id that
// is not in the scene.
type DanglingReferenceError struct {
	AnchorID string // anchor holding the reference
	Kind     string // "node" or "anchor"
	Target   string // id that could not be found
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("anchor %s: %s %q not found", e.AnchorID, e.Kind, e.Target)
}

// Is matches ErrDanglingReference.
func (e *DanglingReferenceError) Is(target error) bool {
	return target == ErrDanglingReference
}

// CyclicReferenceError is returned when anchor-to-anchor indirection revisits an anchor.
type CyclicReferenceError struct {
	Chain []string // anchor ids in visit order, ending with the repeated id
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("anchor reference cycle: %s", strings.Join(e.Chain, " -> "))
}

// Is matches ErrCyclicReference.
func (e *CyclicReferenceError) Is(target error) bool {
	return target == ErrCyclicReference
}
