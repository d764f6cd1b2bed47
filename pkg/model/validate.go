package model

import (
	"errors"
	"fmt"
)

// Validate checks referential integrity and returns every problem found,
// joined with [errors.Join]. Problems wrap [ErrUnknownEndpoint],
// [ErrUnknownElement] or [ErrDuplicatePlacement].
func (m *Model) Validate() error {
	var errs []error

	for _, r := range m.Relationships() {
		if !m.isRelatable(r.Source) || !m.isRelatable(r.Target) {
			errs = append(errs, fmt.Errorf("relationship %s: %w", r.ID, ErrUnknownEndpoint))
		}
	}

	for _, d := range m.Diagrams() {
		seen := make(map[ID]ID)
		for _, p := range m.DiagramPlacements(d.ID) {
			eid, ok := p.UnderlyingElement()
			if !ok {
				continue
			}
			if _, exists := m.elements[eid]; !exists {
				errs = append(errs, fmt.Errorf("placement %s: %w", p.ID, ErrUnknownElement))
				continue
			}
			if first, dup := seen[eid]; dup {
				errs = append(errs, fmt.Errorf("diagram %q: placements %s and %s of element %s: %w",
					d.Name, first, p.ID, eid, ErrDuplicatePlacement))
				continue
			}
			seen[eid] = p.ID
		}
	}

	for _, c := range m.Connections() {
		if m.connectableDiagram(c.Source) == "" || m.connectableDiagram(c.Target) == "" {
			errs = append(errs, fmt.Errorf("connection %s: %w", c.ID, ErrUnknownEndpoint))
		}
	}

	return errors.Join(errs...)
}

// Stats summarises the size of a model.
type Stats struct {
	Elements      int
	Relationships int
	Diagrams      int
	Placements    int
	Connections   int
}

// Stats counts the objects in m. Only attached placements are counted.
func (m *Model) Stats() Stats {
	s := Stats{
		Elements:      len(m.elementOrder),
		Relationships: len(m.relationshipOrder),
		Diagrams:      len(m.diagramOrder),
		Connections:   len(m.connectionOrder),
	}
	for _, id := range m.diagramOrder {
		s.Placements += len(m.DiagramPlacements(id))
	}
	return s
}
