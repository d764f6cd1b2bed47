package merge

import (
	"github.com/matzehuels/elementmerge/pkg/command"
	"github.com/matzehuels/elementmerge/pkg/model"
)

// plan remembers, per diagram, the placements that will show the target once
// the batch built so far has been applied. Every rebind is recorded so later
// placements on the same diagram migrate onto one of them instead of
// producing another box for the target.
type plan struct {
	target model.ID
	shown  map[model.ID][]model.ID
}

func newPlan(target model.ID) *plan {
	return &plan{target: target, shown: make(map[model.ID][]model.ID)}
}

// existingPlacement returns another placement on p's diagram that shows the
// target, or nil. Detached placements never have one. Placements nested
// inside p are skipped because removing p takes them along.
func (pl *plan) existingPlacement(m *model.Model, p *model.Placement) *model.Placement {
	diagram := m.DiagramOf(p.ID)
	if diagram == "" {
		return nil
	}
	for _, other := range m.DiagramPlacements(diagram) {
		if other.ID == p.ID || nestedIn(m, other, p.ID) {
			continue
		}
		if eid, ok := other.UnderlyingElement(); ok && eid == pl.target {
			return other
		}
	}
	for _, id := range pl.shown[diagram] {
		if id == p.ID {
			continue
		}
		if other, ok := m.Placement(id); ok && !nestedIn(m, other, p.ID) {
			return other
		}
	}
	return nil
}

func nestedIn(m *model.Model, p *model.Placement, ancestor model.ID) bool {
	for parent := p.Parent; parent != ""; {
		if parent == ancestor {
			return true
		}
		next, ok := m.Placement(parent)
		if !ok {
			return false
		}
		parent = next.Parent
	}
	return false
}

func (pl *plan) rebound(m *model.Model, p *model.Placement) {
	if diagram := m.DiagramOf(p.ID); diagram != "" {
		pl.shown[diagram] = append(pl.shown[diagram], p.ID)
	}
}

// setElement changes the element a placement shows. It is either a plain
// rebind or, when migrate is set, a migration of the placement's connections
// onto an existing placement of the new element followed by removal of this
// placement. Removal drops the connections of anything nested inside it.
// The variant is fixed at construction.
type setElement struct {
	placement *model.Placement
	old, new  model.ID
	migrate   *command.Compound
}

func newSetElement(m *model.Model, p *model.Placement, target model.ID, pl *plan) *setElement {
	c := &setElement{placement: p, old: p.Element, new: target}

	existing := pl.existingPlacement(m, p)
	if existing == nil {
		pl.rebound(m, p)
		return c
	}

	c.migrate = command.NewCompound("Migrate Diagram Object")
	for _, conn := range m.SourceConnections(p.ID) {
		c.migrate.Add(newMoveConnection(conn, existing.ID, true))
	}
	for _, conn := range m.TargetConnections(p.ID) {
		c.migrate.Add(newMoveConnection(conn, existing.ID, false))
	}
	c.migrate.Add(model.DetachPlacement(m, p.ID))
	return c
}

func (c *setElement) Label() string { return "Set Diagram Object Element" }

// Migrates reports whether the placement is removed rather than rebound.
func (c *setElement) Migrates() bool { return c.migrate != nil }

func (c *setElement) Apply() {
	if c.migrate != nil {
		c.migrate.Apply()
		return
	}
	c.placement.Element = c.new
}

func (c *setElement) Revert() {
	if c.migrate != nil {
		c.migrate.Revert()
		return
	}
	c.placement.Element = c.old
}

// moveConnection rewrites one endpoint of a diagram connection.
type moveConnection struct {
	conn     *model.Connection
	old, new model.ID
	source   bool
}

func newMoveConnection(conn *model.Connection, endpoint model.ID, source bool) *moveConnection {
	old := conn.Target
	if source {
		old = conn.Source
	}
	return &moveConnection{conn: conn, old: old, new: endpoint, source: source}
}

func (c *moveConnection) Label() string { return "Move Connection" }

func (c *moveConnection) Apply() { c.set(c.new) }

func (c *moveConnection) Revert() { c.set(c.old) }

func (c *moveConnection) set(id model.ID) {
	if c.source {
		c.conn.Source = id
	} else {
		c.conn.Target = id
	}
}
