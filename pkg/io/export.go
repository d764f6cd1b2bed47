package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/elementmerge/pkg/model"
)

func toDocument(m *model.Model) document {
	out := document{
		Name:          m.Name,
		Elements:      []element{},
		Relationships: []relationship{},
		Diagrams:      []diagram{},
		Connections:   []connection{},
	}

	for _, e := range m.Elements() {
		el := element{ID: e.ID, Type: e.Type, Name: e.Name, Documentation: e.Documentation}
		for _, p := range e.Properties {
			el.Properties = append(el.Properties, property{Key: p.Key, Value: p.Value})
		}
		out.Elements = append(out.Elements, el)
	}
	for _, r := range m.Relationships() {
		out.Relationships = append(out.Relationships, relationship{
			ID: r.ID, Type: r.Type, Name: r.Name, Source: r.Source, Target: r.Target,
		})
	}
	for _, d := range m.Diagrams() {
		out.Diagrams = append(out.Diagrams, diagram{
			ID: d.ID, Name: d.Name, Children: placements(m, d.Children),
		})
	}
	for _, c := range m.Connections() {
		out.Connections = append(out.Connections, connection{
			ID: c.ID, Source: c.Source, Target: c.Target, Relationship: c.Relationship,
		})
	}
	return out
}

func placements(m *model.Model, ids []model.ID) []placement {
	var out []placement
	for _, id := range ids {
		p, ok := m.Placement(id)
		if !ok {
			continue
		}
		out = append(out, placement{
			ID:       p.ID,
			Kind:     kindToString[p.Kind],
			Element:  p.Element,
			Name:     p.Name,
			Children: placements(m, p.Children),
		})
	}
	return out
}

// WriteJSON encodes a model as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(m *model.Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the JSON document for m.
func Marshal(m *model.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes a model to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(m *model.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}
