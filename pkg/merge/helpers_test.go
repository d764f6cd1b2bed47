package merge

import (
	"fmt"
	"maps"
	"slices"
	"testing"

	"github.com/matzehuels/elementmerge/pkg/model"
)

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// snapshot captures the identity-level state a merge may touch.
type snapshot struct {
	elements  []model.ID
	endpoints map[model.ID][2]model.ID
	bound     map[model.ID]model.ID
	children  map[model.ID][]model.ID
	conns     map[model.ID][2]model.ID
	docs      map[model.ID]string
	props     map[model.ID][]*model.Property
}

// placementIDs lists every attached placement, used to track placements
// across snapshots even after they are detached.
func placementIDs(m *model.Model) []model.ID {
	var ids []model.ID
	for _, d := range m.Diagrams() {
		for _, p := range m.DiagramPlacements(d.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func take(m *model.Model, placements []model.ID) snapshot {
	s := snapshot{
		endpoints: map[model.ID][2]model.ID{},
		bound:     map[model.ID]model.ID{},
		children:  map[model.ID][]model.ID{},
		conns:     map[model.ID][2]model.ID{},
		docs:      map[model.ID]string{},
		props:     map[model.ID][]*model.Property{},
	}
	for _, e := range m.Elements() {
		s.elements = append(s.elements, e.ID)
		s.docs[e.ID] = e.Documentation
		s.props[e.ID] = slices.Clone(e.Properties)
	}
	for _, r := range m.Relationships() {
		s.endpoints[r.ID] = [2]model.ID{r.Source, r.Target}
	}
	for _, d := range m.Diagrams() {
		s.children[d.ID] = slices.Clone(d.Children)
	}
	for _, id := range placements {
		p, _ := m.Placement(id)
		s.bound[id] = p.Element
		s.children[id] = slices.Clone(p.Children)
	}
	for _, c := range m.Connections() {
		s.conns[c.ID] = [2]model.ID{c.Source, c.Target}
	}
	return s
}

func (s snapshot) diff(o snapshot) error {
	switch {
	case !slices.Equal(s.elements, o.elements):
		return fmt.Errorf("elements %v != %v", s.elements, o.elements)
	case !maps.Equal(s.endpoints, o.endpoints):
		return fmt.Errorf("relationship endpoints %v != %v", s.endpoints, o.endpoints)
	case !maps.Equal(s.bound, o.bound):
		return fmt.Errorf("placement elements %v != %v", s.bound, o.bound)
	case !maps.EqualFunc(s.children, o.children, slices.Equal):
		return fmt.Errorf("children %v != %v", s.children, o.children)
	case !maps.Equal(s.conns, o.conns):
		return fmt.Errorf("connections %v != %v", s.conns, o.conns)
	case !maps.Equal(s.docs, o.docs):
		return fmt.Errorf("documentation %q != %q", s.docs, o.docs)
	case !maps.EqualFunc(s.props, o.props, slices.Equal):
		return fmt.Errorf("properties differ by identity")
	}
	return nil
}

// placementsOf counts attached placements of element per diagram.
func placementsOf(m *model.Model, element model.ID) map[model.ID]int {
	counts := map[model.ID]int{}
	for _, p := range m.ReferencingPlacements(element) {
		counts[m.DiagramOf(p.ID)]++
	}
	return counts
}

// scenario builds:
//
//	A -R1-> X, B -R2-> Y, B has property k=v
//	diagram D: pa(A), px(X), pb(B), py(Y)
//	C1: pa -> px, C2: pb -> py
func scenario(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("scenario")
	for _, e := range []*model.Element{
		{ID: "A", Type: "BusinessActor", Name: "Customer"},
		{ID: "X", Type: "BusinessRole", Name: "X"},
		{ID: "B", Type: "BusinessActor", Name: "Customer", Properties: []*model.Property{model.NewProperty("k", "v")}},
		{ID: "Y", Type: "BusinessRole", Name: "Y"},
	} {
		mustAdd(t, m.AddElement(e))
	}
	mustAdd(t, m.AddRelationship(&model.Relationship{ID: "R1", Type: "Assignment", Source: "A", Target: "X"}))
	mustAdd(t, m.AddRelationship(&model.Relationship{ID: "R2", Type: "Assignment", Source: "B", Target: "Y"}))
	mustAdd(t, m.AddDiagram(&model.Diagram{ID: "D", Name: "Main"}))
	for _, p := range []struct{ id, el model.ID }{{"pa", "A"}, {"px", "X"}, {"pb", "B"}, {"py", "Y"}} {
		mustAdd(t, m.AddPlacement("D", &model.Placement{ID: p.id, Element: p.el}))
	}
	mustAdd(t, m.AddConnection(&model.Connection{ID: "C1", Source: "pa", Target: "px", Relationship: "R1"}))
	mustAdd(t, m.AddConnection(&model.Connection{ID: "C2", Source: "pb", Target: "py", Relationship: "R2"}))
	return m
}
