package model

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateID is returned when an object with the same ID already exists.
	ErrDuplicateID = errors.New("duplicate ID")

	// ErrUnknownElement is returned when an ID does not name an element.
	ErrUnknownElement = errors.New("unknown element")

	// ErrUnknownContainer is returned by [Model.AddPlacement] when the parent
	// is neither a diagram nor a placement.
	ErrUnknownContainer = errors.New("unknown container")

	// ErrUnknownEndpoint is returned when a relationship or connection endpoint
	// does not exist.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrInvalidPlacement is returned when an element placement has no
	// element, or a note or group names one.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrDuplicatePlacement is reported by [Model.Validate] when one diagram
	// holds two placements of the same element.
	ErrDuplicatePlacement = errors.New("element placed twice on one diagram")
)

// ID identifies an object within a model.
type ID string

// NewID returns a fresh random identifier.
func NewID() ID { return ID(uuid.NewString()) }

// Property is a key/value pair. Keys are not unique within an element.
// Properties are held by pointer; two properties with equal fields are still
// different properties.
type Property struct {
	Key   string
	Value string
}

// NewProperty returns a new property.
func NewProperty(key, value string) *Property {
	return &Property{Key: key, Value: value}
}

// Element is a typed, named node of the model.
type Element struct {
	ID            ID
	Type          string
	Name          string
	Documentation string
	Properties    []*Property
}

// HasProperty reports whether e has a property with exactly this key and value.
func (e *Element) HasProperty(key, value string) bool {
	for _, p := range e.Properties {
		if p.Key == key && p.Value == value {
			return true
		}
	}
	return false
}

// RemoveProperties removes the given property objects by identity.
// Properties with equal fields but different identity are kept.
func (e *Element) RemoveProperties(props []*Property) {
	if len(props) == 0 {
		return
	}
	e.Properties = slices.DeleteFunc(e.Properties, func(p *Property) bool {
		return slices.Contains(props, p)
	})
}

// Relationship is a typed directed edge. Source and Target name elements or
// other relationships.
type Relationship struct {
	ID     ID
	Type   string
	Name   string
	Source ID
	Target ID
}

// Diagram is an ordered container of diagram objects.
type Diagram struct {
	ID       ID
	Name     string
	Children []ID
}

// Kind distinguishes diagram object variants.
type Kind int

const (
	// KindElement is a placement bound to an element.
	KindElement Kind = iota
	// KindNote is a free-text note.
	KindNote
	// KindGroup is a visual grouping box.
	KindGroup
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindNote:
		return "note"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Placement is a diagram object. Element placements reference exactly one
// element; notes and groups carry a Name instead. Any placement may contain
// nested placements.
//
// Parent is the diagram or placement containing this one, or empty when the
// placement is detached.
type Placement struct {
	ID       ID
	Kind     Kind
	Element  ID
	Name     string
	Parent   ID
	Children []ID
}

// UnderlyingElement returns the element this placement depicts, if it is an
// element placement.
func (p *Placement) UnderlyingElement() (ID, bool) {
	if p.Kind != KindElement || p.Element == "" {
		return "", false
	}
	return p.Element, true
}

// Connection is a diagram-local edge between two connectables (placements or
// connections). Relationship optionally names the relationship it depicts.
type Connection struct {
	ID           ID
	Diagram      ID
	Source       ID
	Target       ID
	Relationship ID
}

// Model is an arena of elements, relationships, diagrams, placements and
// connections. The zero value is not usable; use [New].
type Model struct {
	Name string

	elements          map[ID]*Element
	elementOrder      []ID
	relationships     map[ID]*Relationship
	relationshipOrder []ID
	diagrams          map[ID]*Diagram
	diagramOrder      []ID
	placements        map[ID]*Placement
	connections       map[ID]*Connection
	connectionOrder   []ID
}

// New creates an empty model.
func New(name string) *Model {
	return &Model{
		Name:          name,
		elements:      make(map[ID]*Element),
		relationships: make(map[ID]*Relationship),
		diagrams:      make(map[ID]*Diagram),
		placements:    make(map[ID]*Placement),
		connections:   make(map[ID]*Connection),
	}
}

func (m *Model) exists(id ID) bool {
	if _, ok := m.elements[id]; ok {
		return true
	}
	if _, ok := m.relationships[id]; ok {
		return true
	}
	if _, ok := m.diagrams[id]; ok {
		return true
	}
	if _, ok := m.placements[id]; ok {
		return true
	}
	_, ok := m.connections[id]
	return ok
}

func (m *Model) claim(id *ID) error {
	if *id == "" {
		*id = NewID()
		return nil
	}
	if m.exists(*id) {
		return ErrDuplicateID
	}
	return nil
}

// AddElement adds e to the model, assigning a fresh ID if e.ID is empty.
func (m *Model) AddElement(e *Element) error {
	if err := m.claim(&e.ID); err != nil {
		return err
	}
	m.elements[e.ID] = e
	m.elementOrder = append(m.elementOrder, e.ID)
	return nil
}

// AddRelationship adds r to the model. Both endpoints must already exist as
// elements or relationships.
func (m *Model) AddRelationship(r *Relationship) error {
	if !m.isRelatable(r.Source) || !m.isRelatable(r.Target) {
		return ErrUnknownEndpoint
	}
	if err := m.claim(&r.ID); err != nil {
		return err
	}
	m.relationships[r.ID] = r
	m.relationshipOrder = append(m.relationshipOrder, r.ID)
	return nil
}

// AddDiagram adds an empty diagram. Children must be added with
// [Model.AddPlacement].
func (m *Model) AddDiagram(d *Diagram) error {
	if err := m.claim(&d.ID); err != nil {
		return err
	}
	d.Children = nil
	m.diagrams[d.ID] = d
	m.diagramOrder = append(m.diagramOrder, d.ID)
	return nil
}

// AddPlacement appends p to the children of parent, which must be a diagram
// or a placement already in the model.
func (m *Model) AddPlacement(parent ID, p *Placement) error {
	children := m.childList(parent)
	if children == nil {
		return ErrUnknownContainer
	}
	switch p.Kind {
	case KindElement:
		if _, ok := m.elements[p.Element]; !ok {
			return ErrUnknownElement
		}
	default:
		if p.Element != "" {
			return ErrInvalidPlacement
		}
	}
	if err := m.claim(&p.ID); err != nil {
		return err
	}
	p.Parent = parent
	p.Children = nil
	m.placements[p.ID] = p
	*children = append(*children, p.ID)
	return nil
}

// AddConnection adds c. Both endpoints must be placements or connections
// attached to the same diagram; c.Diagram is set accordingly.
func (m *Model) AddConnection(c *Connection) error {
	src, tgt := m.connectableDiagram(c.Source), m.connectableDiagram(c.Target)
	if src == "" || tgt == "" || src != tgt {
		return ErrUnknownEndpoint
	}
	if c.Relationship != "" {
		if _, ok := m.relationships[c.Relationship]; !ok {
			return ErrUnknownEndpoint
		}
	}
	if err := m.claim(&c.ID); err != nil {
		return err
	}
	c.Diagram = src
	m.connections[c.ID] = c
	m.connectionOrder = append(m.connectionOrder, c.ID)
	return nil
}

func (m *Model) isRelatable(id ID) bool {
	if _, ok := m.elements[id]; ok {
		return true
	}
	_, ok := m.relationships[id]
	return ok
}

// connectableDiagram returns the diagram a connectable is attached to.
func (m *Model) connectableDiagram(id ID) ID {
	if _, ok := m.placements[id]; ok {
		return m.DiagramOf(id)
	}
	if c, ok := m.connections[id]; ok {
		return c.Diagram
	}
	return ""
}

// =============================================================================
// Lookups
// =============================================================================

// Contains reports whether any object in the model has the given ID.
func (m *Model) Contains(id ID) bool { return m.exists(id) }

// Element returns the element with the given ID.
func (m *Model) Element(id ID) (*Element, bool) {
	e, ok := m.elements[id]
	return e, ok
}

// Relationship returns the relationship with the given ID.
func (m *Model) Relationship(id ID) (*Relationship, bool) {
	r, ok := m.relationships[id]
	return r, ok
}

// Diagram returns the diagram with the given ID.
func (m *Model) Diagram(id ID) (*Diagram, bool) {
	d, ok := m.diagrams[id]
	return d, ok
}

// Placement returns the placement with the given ID, attached or not.
func (m *Model) Placement(id ID) (*Placement, bool) {
	p, ok := m.placements[id]
	return p, ok
}

// Connection returns the connection with the given ID.
func (m *Model) Connection(id ID) (*Connection, bool) {
	c, ok := m.connections[id]
	return c, ok
}

// Elements returns all elements in insertion order.
func (m *Model) Elements() []*Element {
	return collect(m.elementOrder, m.elements)
}

// Relationships returns all relationships in insertion order.
func (m *Model) Relationships() []*Relationship {
	return collect(m.relationshipOrder, m.relationships)
}

// Diagrams returns all diagrams in insertion order.
func (m *Model) Diagrams() []*Diagram {
	return collect(m.diagramOrder, m.diagrams)
}

// Connections returns all connections in insertion order.
func (m *Model) Connections() []*Connection {
	return collect(m.connectionOrder, m.connections)
}

func collect[T any](order []ID, objs map[ID]*T) []*T {
	out := make([]*T, 0, len(order))
	for _, id := range order {
		out = append(out, objs[id])
	}
	return out
}

// =============================================================================
// Derived views
// =============================================================================

// SourceRelationships returns the relationships whose source is id.
func (m *Model) SourceRelationships(id ID) []*Relationship {
	var out []*Relationship
	for _, rid := range m.relationshipOrder {
		if r := m.relationships[rid]; r.Source == id {
			out = append(out, r)
		}
	}
	return out
}

// TargetRelationships returns the relationships whose target is id.
func (m *Model) TargetRelationships(id ID) []*Relationship {
	var out []*Relationship
	for _, rid := range m.relationshipOrder {
		if r := m.relationships[rid]; r.Target == id {
			out = append(out, r)
		}
	}
	return out
}

// SourceConnections returns the connections whose source is id.
func (m *Model) SourceConnections(id ID) []*Connection {
	var out []*Connection
	for _, cid := range m.connectionOrder {
		if c := m.connections[cid]; c.Source == id {
			out = append(out, c)
		}
	}
	return out
}

// TargetConnections returns the connections whose target is id.
func (m *Model) TargetConnections(id ID) []*Connection {
	var out []*Connection
	for _, cid := range m.connectionOrder {
		if c := m.connections[cid]; c.Target == id {
			out = append(out, c)
		}
	}
	return out
}

// DiagramPlacements returns every placement attached to the diagram,
// depth-first in child order.
func (m *Model) DiagramPlacements(diagram ID) []*Placement {
	d, ok := m.diagrams[diagram]
	if !ok {
		return nil
	}
	var out []*Placement
	var walk func(ids []ID)
	walk = func(ids []ID) {
		for _, id := range ids {
			p := m.placements[id]
			out = append(out, p)
			walk(p.Children)
		}
	}
	walk(d.Children)
	return out
}

// ReferencingPlacements returns the attached placements bound to element,
// in diagram order.
func (m *Model) ReferencingPlacements(element ID) []*Placement {
	var out []*Placement
	for _, did := range m.diagramOrder {
		for _, p := range m.DiagramPlacements(did) {
			if eid, ok := p.UnderlyingElement(); ok && eid == element {
				out = append(out, p)
			}
		}
	}
	return out
}

// DiagramOf returns the diagram a placement is attached to, following parent
// links. It returns "" for detached or unknown placements.
func (m *Model) DiagramOf(placement ID) ID {
	id := placement
	for {
		p, ok := m.placements[id]
		if !ok {
			if _, isDiagram := m.diagrams[id]; isDiagram && id != placement {
				return id
			}
			return ""
		}
		if p.Parent == "" {
			return ""
		}
		id = p.Parent
	}
}
