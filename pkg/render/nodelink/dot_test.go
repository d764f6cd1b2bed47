package nodelink

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/elementmerge/pkg/model"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("test")
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(m.AddElement(&model.Element{ID: "a", Type: "BusinessActor", Name: "Customer",
		Properties: []*model.Property{model.NewProperty("tier", "gold")}}))
	must(m.AddElement(&model.Element{ID: "b", Type: "BusinessRole", Name: "Insurant"}))
	must(m.AddRelationship(&model.Relationship{ID: "r", Type: "Assignment", Source: "a", Target: "b"}))
	must(m.AddDiagram(&model.Diagram{ID: "d", Name: "Overview"}))
	must(m.AddPlacement("d", &model.Placement{ID: "pa", Element: "a"}))
	must(m.AddPlacement("d", &model.Placement{ID: "g", Kind: model.KindGroup, Name: "Roles"}))
	must(m.AddPlacement("g", &model.Placement{ID: "pb", Element: "b"}))
	must(m.AddPlacement("d", &model.Placement{ID: "n", Kind: model.KindNote, Name: "see docs"}))
	must(m.AddConnection(&model.Connection{ID: "c1", Source: "pa", Target: "pb", Relationship: "r"}))
	must(m.AddConnection(&model.Connection{ID: "c2", Source: "n", Target: "c1"}))
	return m
}

func TestToDOT(t *testing.T) {
	m := testModel(t)
	dot, err := ToDOT(m, "d", Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		`label="Overview";`,
		`"pa" [label="Customer\n«BusinessActor»"];`,
		`subgraph "cluster_g" {`,
		`"pb" [label="Insurant\n«BusinessRole»"];`,
		`shape=note`,
		`"c1" [shape=point`,
		`"pa" -> "c1" [arrowhead=none, label="Assignment", fontsize=10];`,
		`"c1" -> "pb";`,
		`"n" -> "c1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "tier") {
		t.Error("properties shown without Detailed")
	}
}

func TestToDOTDetailed(t *testing.T) {
	m := testModel(t)
	dot, err := ToDOT(m, "d", Options{Detailed: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, `id: a\ntier: gold`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTUnknownDiagram(t *testing.T) {
	m := testModel(t)
	if _, err := ToDOT(m, "pa", Options{}); !errors.Is(err, ErrUnknownDiagram) {
		t.Errorf("err = %v", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.40 200.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.40 200.00" width="100" height="200">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if plain := []byte("<svg><g/></svg>"); string(normalizeViewBox(plain)) != string(plain) {
		t.Error("input without viewBox should be unchanged")
	}
}
