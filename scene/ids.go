package scene

import (
	"github.com/google/uuid"
)

// NewID returns a fresh random identifier for a node, connector or anchor.
func NewID() string {
	return uuid.NewString()
}

// EnsureIDs gives every node, connector and anchor without an id a generated one.
// Existing ids are left alone, duplicates included; Validate reports those.
func EnsureIDs(s *Scene) {
	if s == nil {
		return
	}
	for i := range s.Nodes {
		if s.Nodes[i].ID == "" {
			s.Nodes[i].ID = NewID()
		}
	}
	for i := range s.Connectors {
		c := &s.Connectors[i]
		if c.ID == "" {
			c.ID = NewID()
		}
		for j := range c.Anchors {
			if c.Anchors[j].ID == "" {
				c.Anchors[j].ID = NewID()
			}
		}
	}
}
