package merge_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/elementmerge/pkg/command"
	"github.com/matzehuels/elementmerge/pkg/merge"
	"github.com/matzehuels/elementmerge/pkg/model"
)

func Example() {
	m := model.New("Example")
	_ = m.AddElement(&model.Element{ID: "crm1", Type: "ApplicationComponent", Name: "CRM"})
	_ = m.AddElement(&model.Element{ID: "crm2", Type: "ApplicationComponent", Name: "CRM", Documentation: "Legacy entry"})
	_ = m.AddElement(&model.Element{ID: "db", Type: "DataObject", Name: "Customers"})
	_ = m.AddRelationship(&model.Relationship{ID: "r", Type: "Access", Source: "crm2", Target: "db"})

	stack := command.NewStack(0)
	merger := merge.NewMerger(m, stack, merge.FixedChooser{}, log.New(io.Discard))

	res, err := merger.Merge(context.Background(), []model.ID{"crm1", "crm2"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	r, _ := m.Relationship("r")
	crm, _ := m.Element("crm1")
	fmt.Println("target:", res.Target)
	fmt.Println("relationship:", r.Source, "->", r.Target)
	fmt.Println("documentation:", crm.Documentation)

	stack.Undo()
	_, restored := m.Element("crm2")
	fmt.Println("restored:", restored)
	// Output:
	// target: crm1
	// relationship: crm1 -> db
	// documentation: Legacy entry
	// restored: true
}

func ExampleFindDuplicates() {
	m := model.New("Example")
	_ = m.AddElement(&model.Element{ID: "a", Type: "Node", Name: "web-01"})
	_ = m.AddElement(&model.Element{ID: "b", Type: "Node", Name: "db-01"})
	_ = m.AddElement(&model.Element{ID: "c", Type: "Node", Name: "web-01"})

	for _, g := range merge.FindDuplicates(m) {
		fmt.Println(g.Type, g.Name, g.IDs())
	}
	// Output:
	// Node web-01 [a c]
}
