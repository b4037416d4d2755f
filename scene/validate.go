package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"isogrid/anchor"
	"isogrid/core"
)

// ValidationError describes one problem found in a scene.
type ValidationError struct {
	Kind    string // "node", "connector" or "anchor"
	ID      string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.ID, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the scene for structural problems: empty or duplicate ids, malformed
// connectors, anchor ids shared between connectors, and references that cannot be
// resolved. Problems are reported in scene order; the scene is still usable and
// Derive skips only the connectors that fail.
func (s *Scene) Validate() []ValidationError {
	var problems []ValidationError

	for i, n := range s.Nodes {
		if n.ID == "" {
			problems = append(problems, ValidationError{Kind: "node", ID: fmt.Sprintf("#%d", i), Message: "node has no id"})
		}
	}
	for _, n := range lo.FindDuplicatesBy(s.Nodes, func(n core.Node) string { return n.ID }) {
		if n.ID != "" {
			problems = append(problems, ValidationError{Kind: "node", ID: n.ID, Message: "duplicate node id"})
		}
	}
	for _, c := range lo.FindDuplicatesBy(s.Connectors, func(c core.Connector) string { return c.ID }) {
		if c.ID != "" {
			problems = append(problems, ValidationError{Kind: "connector", ID: c.ID, Message: "duplicate connector id"})
		}
	}

	resolver := anchor.NewResolver(s.Nodes, s.Connectors)
	for _, id := range resolver.Index().Duplicates() {
		problems = append(problems, ValidationError{
			Kind:    "anchor",
			ID:      id,
			Message: fmt.Sprintf("anchor id is used by more than one connector; references resolve to connector %s", resolver.Index().Owner(id)),
		})
	}

	for i, c := range s.Connectors {
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("#%d", i)
		}
		if err := c.Validate(); err != nil {
			problems = append(problems, ValidationError{Kind: "connector", ID: id, Message: err.Error(), Err: err})
			continue
		}
		if _, err := resolver.ResolveConnector(c); err != nil {
			problems = append(problems, ValidationError{Kind: "connector", ID: id, Message: err.Error(), Err: err})
		}
	}
	return problems
}

// ValidationErrors joins problems into one error, or nil when there are none.
func ValidationErrors(problems []ValidationError) error {
	if len(problems) == 0 {
		return nil
	}
	errs := lo.Map(problems, func(p ValidationError, _ int) error { return p })
	return errors.Join(errs...)
}

// Summary renders problems one per line.
func Summary(problems []ValidationError) string {
	lines := lo.Map(problems, func(p ValidationError, _ int) string { return p.Error() })
	return strings.Join(lines, "\n")
}
