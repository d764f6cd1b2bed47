package model

import "slices"

// childList returns a pointer to the child slice of a diagram or placement,
// or nil if container is neither.
func (m *Model) childList(container ID) *[]ID {
	if d, ok := m.diagrams[container]; ok {
		return &d.Children
	}
	if p, ok := m.placements[container]; ok {
		return &p.Children
	}
	return nil
}

// IsContainer reports whether id names a diagram or a placement.
func (m *Model) IsContainer(id ID) bool { return m.childList(id) != nil }

// Children returns the ordered child IDs of a container.
// The returned slice must not be modified.
func (m *Model) Children(container ID) []ID {
	if children := m.childList(container); children != nil {
		return *children
	}
	return nil
}

// IndexOfChild returns the position of child within container, or -1.
func (m *Model) IndexOfChild(container, child ID) int {
	children := m.childList(container)
	if children == nil {
		return -1
	}
	return slices.Index(*children, child)
}

// RemoveChild detaches child from container and returns the index it held.
// It reports false, changing nothing, if child is not a direct child.
func (m *Model) RemoveChild(container, child ID) (int, bool) {
	children := m.childList(container)
	if children == nil {
		return -1, false
	}
	i := slices.Index(*children, child)
	if i < 0 {
		return -1, false
	}
	*children = slices.Delete(*children, i, i+1)
	if p, ok := m.placements[child]; ok {
		p.Parent = ""
	}
	return i, true
}

// InsertChild attaches a placement to container at index. Indexes past the
// end append.
func (m *Model) InsertChild(container ID, index int, child ID) {
	children := m.childList(container)
	p, ok := m.placements[child]
	if children == nil || !ok {
		return
	}
	index = max(0, min(index, len(*children)))
	*children = slices.Insert(*children, index, child)
	p.Parent = container
}

// =============================================================================
// Arena removal with positional restore
// =============================================================================

func removeOrdered[T any](order *[]ID, objs map[ID]*T, id ID) (*T, int) {
	obj, ok := objs[id]
	if !ok {
		return nil, -1
	}
	i := slices.Index(*order, id)
	if i >= 0 {
		*order = slices.Delete(*order, i, i+1)
	}
	delete(objs, id)
	return obj, i
}

func insertOrdered[T any](order *[]ID, objs map[ID]*T, index int, id ID, obj *T) {
	objs[id] = obj
	index = max(0, min(index, len(*order)))
	*order = slices.Insert(*order, index, id)
}

func (m *Model) removeElement(id ID) (*Element, int) {
	return removeOrdered(&m.elementOrder, m.elements, id)
}

func (m *Model) restoreElement(index int, e *Element) {
	insertOrdered(&m.elementOrder, m.elements, index, e.ID, e)
}

func (m *Model) removeRelationship(id ID) (*Relationship, int) {
	return removeOrdered(&m.relationshipOrder, m.relationships, id)
}

func (m *Model) restoreRelationship(index int, r *Relationship) {
	insertOrdered(&m.relationshipOrder, m.relationships, index, r.ID, r)
}

func (m *Model) removeConnection(id ID) (*Connection, int) {
	return removeOrdered(&m.connectionOrder, m.connections, id)
}

func (m *Model) restoreConnection(index int, c *Connection) {
	insertOrdered(&m.connectionOrder, m.connections, index, c.ID, c)
}
