package model

import (
	"errors"
	"slices"
	"testing"
)

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddElementAssignsID(t *testing.T) {
	m := New("test")
	e := &Element{Type: "Node", Name: "a"}
	mustAdd(t, m.AddElement(e))
	if e.ID == "" {
		t.Fatal("AddElement should assign an ID")
	}
	if got, ok := m.Element(e.ID); !ok || got != e {
		t.Errorf("Element(%s) = %v, %v", e.ID, got, ok)
	}

	dup := &Element{ID: e.ID}
	if err := m.AddElement(dup); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("AddElement(dup) error = %v, want ErrDuplicateID", err)
	}
}

func TestAddRelationshipValidatesEndpoints(t *testing.T) {
	m := New("test")
	a := &Element{ID: "a"}
	b := &Element{ID: "b"}
	mustAdd(t, m.AddElement(a))
	mustAdd(t, m.AddElement(b))

	if err := m.AddRelationship(&Relationship{Source: "a", Target: "missing"}); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("error = %v, want ErrUnknownEndpoint", err)
	}

	r := &Relationship{ID: "r", Source: "a", Target: "b"}
	mustAdd(t, m.AddRelationship(r))

	// Relationships may target other relationships.
	mustAdd(t, m.AddRelationship(&Relationship{ID: "r2", Source: "a", Target: "r"}))
}

func TestAddPlacement(t *testing.T) {
	m := New("test")
	mustAdd(t, m.AddElement(&Element{ID: "a"}))
	mustAdd(t, m.AddDiagram(&Diagram{ID: "d"}))

	tests := []struct {
		name    string
		parent  ID
		p       *Placement
		wantErr error
	}{
		{"unknown container", "nope", &Placement{Kind: KindElement, Element: "a"}, ErrUnknownContainer},
		{"unknown element", "d", &Placement{Kind: KindElement, Element: "x"}, ErrUnknownElement},
		{"note with element", "d", &Placement{Kind: KindNote, Element: "a"}, ErrInvalidPlacement},
		{"element", "d", &Placement{ID: "pa", Kind: KindElement, Element: "a"}, nil},
		{"nested note", "pa", &Placement{ID: "n", Kind: KindNote, Name: "hello"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.AddPlacement(tt.parent, tt.p)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddPlacement() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := m.DiagramOf("n"); got != "d" {
		t.Errorf("DiagramOf(n) = %q, want %q", got, "d")
	}
	if got := m.Children("d"); !slices.Equal(got, []ID{"pa"}) {
		t.Errorf("Children(d) = %v", got)
	}
}

func TestAddConnectionSameDiagram(t *testing.T) {
	m := New("test")
	mustAdd(t, m.AddElement(&Element{ID: "a"}))
	mustAdd(t, m.AddDiagram(&Diagram{ID: "d1"}))
	mustAdd(t, m.AddDiagram(&Diagram{ID: "d2"}))
	mustAdd(t, m.AddPlacement("d1", &Placement{ID: "p1", Element: "a"}))
	mustAdd(t, m.AddPlacement("d1", &Placement{ID: "n1", Kind: KindNote}))
	mustAdd(t, m.AddPlacement("d2", &Placement{ID: "p2", Element: "a"}))

	if err := m.AddConnection(&Connection{Source: "p1", Target: "p2"}); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("cross-diagram connection error = %v, want ErrUnknownEndpoint", err)
	}

	c := &Connection{ID: "c", Source: "p1", Target: "n1"}
	mustAdd(t, m.AddConnection(c))
	if c.Diagram != "d1" {
		t.Errorf("Diagram = %q, want d1", c.Diagram)
	}

	// Connections may end on other connections.
	mustAdd(t, m.AddConnection(&Connection{ID: "c2", Source: "n1", Target: "c"}))
	if got := m.TargetConnections("c"); len(got) != 1 || got[0].ID != "c2" {
		t.Errorf("TargetConnections(c) = %v", got)
	}
}

func TestDerivedViewsFollowInsertionOrder(t *testing.T) {
	m := New("test")
	for _, id := range []ID{"a", "b", "c"} {
		mustAdd(t, m.AddElement(&Element{ID: id}))
	}
	mustAdd(t, m.AddRelationship(&Relationship{ID: "r1", Source: "a", Target: "b"}))
	mustAdd(t, m.AddRelationship(&Relationship{ID: "r2", Source: "c", Target: "a"}))
	mustAdd(t, m.AddRelationship(&Relationship{ID: "r3", Source: "a", Target: "c"}))

	ids := func(rs []*Relationship) []ID {
		var out []ID
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	if got := ids(m.SourceRelationships("a")); !slices.Equal(got, []ID{"r1", "r3"}) {
		t.Errorf("SourceRelationships(a) = %v", got)
	}
	if got := ids(m.TargetRelationships("a")); !slices.Equal(got, []ID{"r2"}) {
		t.Errorf("TargetRelationships(a) = %v", got)
	}

	mustAdd(t, m.AddDiagram(&Diagram{ID: "d1"}))
	mustAdd(t, m.AddDiagram(&Diagram{ID: "d2"}))
	mustAdd(t, m.AddPlacement("d2", &Placement{ID: "p3", Element: "a"}))
	mustAdd(t, m.AddPlacement("d1", &Placement{ID: "g", Kind: KindGroup}))
	mustAdd(t, m.AddPlacement("g", &Placement{ID: "p1", Element: "a"}))
	mustAdd(t, m.AddPlacement("d1", &Placement{ID: "p2", Element: "b"}))

	var got []ID
	for _, p := range m.ReferencingPlacements("a") {
		got = append(got, p.ID)
	}
	if !slices.Equal(got, []ID{"p1", "p3"}) {
		t.Errorf("ReferencingPlacements(a) = %v", got)
	}
}

func TestRemoveAndInsertChild(t *testing.T) {
	m := New("test")
	mustAdd(t, m.AddElement(&Element{ID: "a"}))
	mustAdd(t, m.AddDiagram(&Diagram{ID: "d"}))
	for _, id := range []ID{"p1", "p2", "p3"} {
		mustAdd(t, m.AddPlacement("d", &Placement{ID: id, Kind: KindNote}))
	}

	i, ok := m.RemoveChild("d", "p2")
	if !ok || i != 1 {
		t.Fatalf("RemoveChild() = %d, %v; want 1, true", i, ok)
	}
	if p, _ := m.Placement("p2"); p.Parent != "" || m.DiagramOf("p2") != "" {
		t.Error("removed placement should be detached")
	}
	if _, ok := m.RemoveChild("d", "p2"); ok {
		t.Error("second RemoveChild should report false")
	}

	m.InsertChild("d", i, "p2")
	if got := m.Children("d"); !slices.Equal(got, []ID{"p1", "p2", "p3"}) {
		t.Errorf("Children after reinsert = %v", got)
	}
	if got := m.DiagramOf("p2"); got != "d" {
		t.Errorf("DiagramOf(p2) = %q, want d", got)
	}
}

func TestValidate(t *testing.T) {
	m := New("test")
	mustAdd(t, m.AddElement(&Element{ID: "a"}))
	mustAdd(t, m.AddDiagram(&Diagram{ID: "d"}))
	mustAdd(t, m.AddPlacement("d", &Placement{ID: "p1", Element: "a"}))

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	mustAdd(t, m.AddPlacement("d", &Placement{ID: "p2", Element: "a"}))
	if err := m.Validate(); !errors.Is(err, ErrDuplicatePlacement) {
		t.Errorf("Validate() = %v, want ErrDuplicatePlacement", err)
	}

	if got := m.Stats(); got.Elements != 1 || got.Placements != 2 || got.Diagrams != 1 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestElementProperties(t *testing.T) {
	p1 := NewProperty("k", "v")
	p2 := NewProperty("k", "v")
	e := &Element{Properties: []*Property{p1, p2}}

	if !e.HasProperty("k", "v") {
		t.Error("HasProperty(k, v) = false")
	}
	if e.HasProperty("k", "other") {
		t.Error("HasProperty(k, other) = true")
	}

	e.RemoveProperties([]*Property{p2})
	if len(e.Properties) != 1 || e.Properties[0] != p1 {
		t.Errorf("RemoveProperties should remove by identity, got %v", e.Properties)
	}
}
