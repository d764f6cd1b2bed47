// Package model provides the in-memory model graph that merges operate on.
//
// # Overview
//
// A [Model] is an arena of objects addressed by stable identifiers ([ID]):
//
//   - [Element]: a typed, named node with documentation and an ordered list
//     of key/value [Property] values
//   - [Relationship]: a typed directed edge between two elements (or between
//     an element and another relationship)
//   - [Diagram]: an ordered container of diagram objects
//   - [Placement]: a diagram object; element placements are bound to exactly
//     one element, notes and groups are not
//   - [Connection]: a diagram-local edge between two placements or
//     connections, independent of the relationship graph
//
// Objects reference each other by ID only. Rewriting an endpoint is a plain
// field assignment, and the derived views (relationships of an element,
// placements of an element, connections of a placement) are computed by
// scanning the arena in insertion order, so they never go stale.
//
// # Building
//
//	m := model.New("Example")
//	a := &model.Element{Type: "ApplicationComponent", Name: "CRM"}
//	_ = m.AddElement(a)               // assigns a fresh ID
//	d := &model.Diagram{Name: "Overview"}
//	_ = m.AddDiagram(d)
//	_ = m.AddPlacement(d.ID, &model.Placement{Kind: model.KindElement, Element: a.ID})
//
// # Deletion
//
// [DeleteElement] returns a reversible command that removes an element
// together with anything still attached to it, and restores all of it at
// the original positions when reverted.
//
// # Concurrency
//
// Model is not safe for concurrent use. Callers must serialise access.
package model
