package model

import "github.com/matzehuels/elementmerge/pkg/command"

// DeleteElement returns a command that removes an element from m.
//
// What gets removed is decided when the command is applied, so it sees the
// effects of commands applied before it in the same batch:
//   - attached placements bound to the element, with their nested placements
//     and every connection touching any of them
//   - relationships with the element as an endpoint, relationships attached
//     to those, and the connections depicting them
//   - the element itself
//
// Revert restores all of it at the original positions. Applying the command
// for an element that does not exist does nothing.
func DeleteElement(m *Model, id ID) command.Command {
	return &deleteElement{undoLog: undoLog{m: m}, id: id}
}

// DetachPlacement returns a command that removes an attached placement from
// its container together with every connection touching it or a placement
// nested inside it. The nested placements stay under the detached one.
//
// The container and index are taken at apply time. A placement that is not
// attached to a diagram by then is left alone, and so is everything below it.
func DetachPlacement(m *Model, id ID) command.Command {
	return &detachPlacement{undoLog: undoLog{m: m}, id: id}
}

// undoLog records inverse steps of arena edits and replays them backwards.
type undoLog struct {
	m    *Model
	undo []func()
}

func (u *undoLog) Revert() {
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.undo = nil
}

type deleteElement struct {
	undoLog
	id ID
}

func (c *deleteElement) Label() string { return "Delete Element" }

func (c *deleteElement) Apply() {
	c.undo = nil
	if _, ok := c.m.elements[c.id]; !ok {
		return
	}
	for _, p := range c.m.ReferencingPlacements(c.id) {
		c.detachPlacement(p)
	}
	c.removeRelationshipsOf(c.id)

	e, i := c.m.removeElement(c.id)
	c.undo = append(c.undo, func() { c.m.restoreElement(i, e) })
}

type detachPlacement struct {
	undoLog
	id ID
}

func (c *detachPlacement) Label() string { return "Delete Diagram Object" }

func (c *detachPlacement) Apply() {
	c.undo = nil
	p, ok := c.m.placements[c.id]
	if !ok || c.m.DiagramOf(c.id) == "" {
		return
	}
	c.detachPlacement(p)
}

func (u *undoLog) detachPlacement(p *Placement) {
	var subtree func(p *Placement)
	subtree = func(p *Placement) {
		u.removeConnectionsOf(p.ID)
		for _, child := range p.Children {
			subtree(u.m.placements[child])
		}
	}
	subtree(p)

	parent := p.Parent
	if i, ok := u.m.RemoveChild(parent, p.ID); ok {
		u.undo = append(u.undo, func() { u.m.InsertChild(parent, i, p.ID) })
	}
}

func (u *undoLog) removeConnectionsOf(id ID) {
	attached := append(u.m.SourceConnections(id), u.m.TargetConnections(id)...)
	for _, conn := range attached {
		u.removeConnection(conn.ID)
	}
}

func (u *undoLog) removeConnection(id ID) {
	if _, ok := u.m.connections[id]; !ok {
		return
	}
	u.removeConnectionsOf(id)
	conn, i := u.m.removeConnection(id)
	u.undo = append(u.undo, func() { u.m.restoreConnection(i, conn) })
}

func (u *undoLog) removeRelationshipsOf(id ID) {
	attached := append(u.m.SourceRelationships(id), u.m.TargetRelationships(id)...)
	for _, r := range attached {
		if _, ok := u.m.relationships[r.ID]; !ok {
			continue
		}
		u.removeRelationshipsOf(r.ID)
		for _, conn := range u.m.Connections() {
			if conn.Relationship == r.ID {
				u.removeConnection(conn.ID)
			}
		}
		rel, i := u.m.removeRelationship(r.ID)
		u.undo = append(u.undo, func() { u.m.restoreRelationship(i, rel) })
	}
}
