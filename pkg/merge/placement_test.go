package merge

import (
	"slices"
	"testing"

	"github.com/matzehuels/elementmerge/pkg/model"
)

func TestSetElementRebind(t *testing.T) {
	m := scenario(t)
	mustAdd(t, m.AddElement(&model.Element{ID: "Z", Type: "BusinessActor", Name: "Customer"}))

	p, _ := m.Placement("pb")
	op := newSetElement(m, p, "Z", newPlan("Z"))
	if op.Migrates() {
		t.Fatal("Z is not on D, expected rebind")
	}
	op.Apply()
	if p.Element != "Z" {
		t.Errorf("Element = %s, want Z", p.Element)
	}
	op.Revert()
	if p.Element != "B" {
		t.Errorf("Element after revert = %s, want B", p.Element)
	}
}

func TestSetElementDecidedAtConstruction(t *testing.T) {
	m := scenario(t)
	p, _ := m.Placement("pb")
	op := newSetElement(m, p, "A", newPlan("A"))
	if !op.Migrates() {
		t.Fatal("A is on D, expected migration")
	}

	// Removing pa afterwards does not turn the migration back into a rebind.
	if _, ok := m.RemoveChild("D", "pa"); !ok {
		t.Fatal("RemoveChild(pa)")
	}
	if !op.Migrates() {
		t.Error("variant changed after construction")
	}
}

func TestMigrationMovesConnections(t *testing.T) {
	m := scenario(t)
	// Extra incoming and outgoing connections on pb, and one between pa and pb.
	mustAdd(t, m.AddConnection(&model.Connection{ID: "in", Source: "px", Target: "pb"}))
	mustAdd(t, m.AddConnection(&model.Connection{ID: "ab", Source: "pa", Target: "pb"}))
	pids := placementIDs(m)
	before := take(m, pids)
	connsBefore := len(m.Connections())

	p, _ := m.Placement("pb")
	op := newSetElement(m, p, "A", newPlan("A"))
	op.Apply()

	for _, c := range m.Connections() {
		if c.Source == "pb" || c.Target == "pb" {
			t.Errorf("connection %s still touches pb", c.ID)
		}
	}
	if got := len(m.Connections()); got != connsBefore {
		t.Errorf("connections = %d, want %d", got, connsBefore)
	}
	in, _ := m.Connection("in")
	if in.Target != "pa" {
		t.Errorf("in.Target = %s, want pa", in.Target)
	}
	ab, _ := m.Connection("ab")
	if ab.Source != "pa" || ab.Target != "pa" {
		t.Errorf("ab = %s -> %s, want pa -> pa", ab.Source, ab.Target)
	}
	if m.DiagramOf("pb") != "" {
		t.Error("pb should be detached")
	}
	if p.Element != "B" {
		t.Error("migrated placement must not be rebound")
	}

	op.Revert()
	if err := before.diff(take(m, pids)); err != nil {
		t.Errorf("after revert: %v", err)
	}
}

func TestMigrationFindsNestedPlacement(t *testing.T) {
	m := scenario(t)
	mustAdd(t, m.AddPlacement("D", &model.Placement{ID: "group", Kind: model.KindGroup, Name: "G"}))
	mustAdd(t, m.AddElement(&model.Element{ID: "T", Type: "BusinessActor", Name: "Customer"}))
	mustAdd(t, m.AddPlacement("group", &model.Placement{ID: "pt", Element: "T"}))

	p, _ := m.Placement("pb")
	op := newSetElement(m, p, "T", newPlan("T"))
	if !op.Migrates() {
		t.Fatal("expected migration onto nested placement")
	}
	op.Apply()
	c2, _ := m.Connection("C2")
	if c2.Source != "pt" {
		t.Errorf("C2.Source = %s, want pt", c2.Source)
	}
}

func TestExistingPlacementSkipsDescendants(t *testing.T) {
	m := scenario(t)
	mustAdd(t, m.AddPlacement("pb", &model.Placement{ID: "inner", Element: "A"}))
	// pa is the only valid candidate; inner lives inside pb.
	if _, ok := m.RemoveChild("D", "pa"); !ok {
		t.Fatal("RemoveChild(pa)")
	}

	p, _ := m.Placement("pb")
	if got := newPlan("A").existingPlacement(m, p); got != nil {
		t.Errorf("existingPlacement = %s, want nil", got.ID)
	}
}

func TestDetachedPlacementAlwaysRebinds(t *testing.T) {
	m := scenario(t)
	if _, ok := m.RemoveChild("D", "pb"); !ok {
		t.Fatal("RemoveChild(pb)")
	}
	p, _ := m.Placement("pb")
	op := newSetElement(m, p, "A", newPlan("A"))
	if op.Migrates() {
		t.Error("detached placement should rebind")
	}
}

// nestedScenario is diagram d = [pa(a), pb(b){px(x)}, py(y)] with connection
// c from px to py. Merging b into a removes pb and px with it.
func nestedScenario(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("nested")
	for _, e := range []*model.Element{
		{ID: "a", Type: "BusinessActor", Name: "Customer"},
		{ID: "b", Type: "BusinessActor", Name: "Customer"},
		{ID: "x", Type: "BusinessRole", Name: "X"},
		{ID: "y", Type: "BusinessRole", Name: "Y"},
	} {
		mustAdd(t, m.AddElement(e))
	}
	mustAdd(t, m.AddDiagram(&model.Diagram{ID: "d", Name: "Main"}))
	mustAdd(t, m.AddPlacement("d", &model.Placement{ID: "pa", Element: "a"}))
	mustAdd(t, m.AddPlacement("d", &model.Placement{ID: "pb", Element: "b"}))
	mustAdd(t, m.AddPlacement("pb", &model.Placement{ID: "px", Element: "x"}))
	mustAdd(t, m.AddPlacement("d", &model.Placement{ID: "py", Element: "y"}))
	mustAdd(t, m.AddConnection(&model.Connection{ID: "c", Source: "px", Target: "py"}))
	return m
}

func TestMigrationDropsNestedConnections(t *testing.T) {
	m := nestedScenario(t)
	mustAdd(t, m.AddConnection(&model.Connection{ID: "ba", Source: "pb", Target: "py"}))
	pids := placementIDs(m)
	before := take(m, pids)

	batch, err := NewBatch(m, []model.ID{"a", "b"}, "a", true)
	if err != nil {
		t.Fatal(err)
	}
	batch.Apply()

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() after merge = %v", err)
	}
	if _, ok := m.Connection("c"); ok {
		t.Error("connection c from the removed subtree should be gone")
	}
	ba, ok := m.Connection("ba")
	if !ok || ba.Source != "pa" {
		t.Error("connection ba should have moved to pa")
	}
	if got := m.Children("d"); !slices.Equal(got, []model.ID{"pa", "py"}) {
		t.Errorf("Children(d) = %v", got)
	}

	batch.Revert()
	if err := before.diff(take(m, pids)); err != nil {
		t.Errorf("after revert: %v", err)
	}
	if got := m.DiagramOf("px"); got != "d" {
		t.Errorf("DiagramOf(px) after revert = %q, want d", got)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() after revert = %v", err)
	}
}

func TestPlanRecordsEveryRebind(t *testing.T) {
	// q{p{f}} on d, and the target a is not on d. f rebinds first, q cannot
	// see f because f is nested in it, so q rebinds as well. p must then
	// migrate onto q rather than rebind a third time.
	m := model.New("chain")
	for _, id := range []model.ID{"a", "f", "q", "p"} {
		mustAdd(t, m.AddElement(&model.Element{ID: id, Type: "Node", Name: "n"}))
	}
	mustAdd(t, m.AddDiagram(&model.Diagram{ID: "d"}))
	mustAdd(t, m.AddPlacement("d", &model.Placement{ID: "pq", Element: "q"}))
	mustAdd(t, m.AddPlacement("pq", &model.Placement{ID: "pp", Element: "p"}))
	mustAdd(t, m.AddPlacement("pp", &model.Placement{ID: "pf", Element: "f"}))

	pl := newPlan("a")
	var migrated []model.ID
	for _, id := range []model.ID{"pf", "pq", "pp"} {
		p, _ := m.Placement(id)
		if newSetElement(m, p, "a", pl).Migrates() {
			migrated = append(migrated, id)
		}
	}
	if !slices.Equal(migrated, []model.ID{"pp"}) {
		t.Errorf("migrated = %v, want [pp]", migrated)
	}

	batch, err := NewBatch(m, []model.ID{"a", "f", "q", "p"}, "a", false)
	if err != nil {
		t.Fatal(err)
	}
	batch.Apply()
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() after merge = %v", err)
	}
	if got := m.Children("d"); !slices.Equal(got, []model.ID{"pq"}) {
		t.Errorf("Children(d) = %v", got)
	}
	if got := m.Children("pq"); len(got) != 0 {
		t.Errorf("Children(pq) = %v, want none", got)
	}
}

func TestMoveConnection(t *testing.T) {
	m := scenario(t)
	c, _ := m.Connection("C1")

	src := newMoveConnection(c, "pb", true)
	tgt := newMoveConnection(c, "py", false)
	src.Apply()
	tgt.Apply()
	if c.Source != "pb" || c.Target != "py" {
		t.Errorf("C1 = %s -> %s", c.Source, c.Target)
	}
	tgt.Revert()
	src.Revert()
	if c.Source != "pa" || c.Target != "px" {
		t.Errorf("C1 after revert = %s -> %s", c.Source, c.Target)
	}
}

func TestReconnectRelationship(t *testing.T) {
	m := scenario(t)
	r, _ := m.Relationship("R1")

	op := newReconnectRelationship(r, "B", false)
	op.Apply()
	if r.Source != "A" || r.Target != "B" {
		t.Errorf("R1 = %s -> %s", r.Source, r.Target)
	}
	op.Revert()
	if r.Target != "X" {
		t.Errorf("R1.Target after revert = %s, want X", r.Target)
	}
}
