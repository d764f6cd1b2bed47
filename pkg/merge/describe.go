package merge

import (
	"slices"
	"strings"

	"github.com/matzehuels/elementmerge/pkg/model"
)

// Summary describes an element for choosing a merge target.
type Summary struct {
	ID         model.ID `json:"id"`
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	UsedIn     []string `json:"used_in"`
	Relations  []string `json:"relations"`
	Properties string   `json:"properties"`
}

// previewLimit is how many properties [Describe] shows before eliding.
const previewLimit = 2

// Describe summarises an element: the distinct names of the diagrams showing
// it, its relations as "<Type> -> <target>" for outgoing and
// "<source> -> <Type>" for incoming, and a preview of its first properties.
func Describe(m *model.Model, e *model.Element) Summary {
	s := Summary{ID: e.ID, Type: e.Type, Name: e.Name}

	for _, p := range m.ReferencingPlacements(e.ID) {
		d, ok := m.Diagram(m.DiagramOf(p.ID))
		if ok && !slices.Contains(s.UsedIn, d.Name) {
			s.UsedIn = append(s.UsedIn, d.Name)
		}
	}
	for _, r := range m.SourceRelationships(e.ID) {
		s.Relations = append(s.Relations, r.Type+" -> "+endpointLabel(m, r.Target))
	}
	for _, r := range m.TargetRelationships(e.ID) {
		s.Relations = append(s.Relations, endpointLabel(m, r.Source)+" -> "+r.Type)
	}
	s.Properties = propertiesPreview(e.Properties)
	return s
}

// DescribeAll returns a summary for each element.
func DescribeAll(m *model.Model, elements []*model.Element) []Summary {
	out := make([]Summary, 0, len(elements))
	for _, e := range elements {
		out = append(out, Describe(m, e))
	}
	return out
}

func endpointLabel(m *model.Model, id model.ID) string {
	if e, ok := m.Element(id); ok {
		return e.Name
	}
	if r, ok := m.Relationship(id); ok {
		if r.Name != "" {
			return r.Name
		}
		return r.Type
	}
	return string(id)
}

func propertiesPreview(props []*model.Property) string {
	var sb strings.Builder
	for i, p := range props {
		if i == previewLimit {
			sb.WriteString("...")
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Key + "=" + p.Value)
	}
	return sb.String()
}

// Group is a set of elements that share a type and a name.
type Group struct {
	Type     string
	Name     string
	Elements []*model.Element
}

// IDs returns the element IDs in model order.
func (g Group) IDs() []model.ID {
	ids := make([]model.ID, len(g.Elements))
	for i, e := range g.Elements {
		ids[i] = e.ID
	}
	return ids
}

// FindDuplicates returns every group of two or more elements sharing a type
// and a non-empty name, ordered by the first element of each group.
// Unnamed elements are left out of the suggestions; they can still be merged
// when selected explicitly.
func FindDuplicates(m *model.Model) []Group {
	type key struct{ typ, name string }
	index := make(map[key]int)
	var groups []Group
	for _, e := range m.Elements() {
		if e.Name == "" {
			continue
		}
		k := key{e.Type, e.Name}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Type: e.Type, Name: e.Name})
		}
		groups[i].Elements = append(groups[i].Elements, e)
	}
	return slices.DeleteFunc(groups, func(g Group) bool { return len(g.Elements) < 2 })
}
