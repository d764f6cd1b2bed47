package merge

import "github.com/matzehuels/elementmerge/pkg/model"

// reconnectRelationship rewrites one endpoint of a relationship.
type reconnectRelationship struct {
	rel      *model.Relationship
	old, new model.ID
	source   bool
}

func newReconnectRelationship(rel *model.Relationship, endpoint model.ID, source bool) *reconnectRelationship {
	old := rel.Target
	if source {
		old = rel.Source
	}
	return &reconnectRelationship{rel: rel, old: old, new: endpoint, source: source}
}

func (c *reconnectRelationship) Label() string { return "Reconnect Relationship" }

func (c *reconnectRelationship) Apply() { c.set(c.new) }

func (c *reconnectRelationship) Revert() { c.set(c.old) }

func (c *reconnectRelationship) set(id model.ID) {
	if c.source {
		c.rel.Source = id
	} else {
		c.rel.Target = id
	}
}
