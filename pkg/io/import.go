package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/elementmerge/pkg/model"
)

// ErrUnknownKind is returned for a placement kind other than "element",
// "note" or "group".
var ErrUnknownKind = errors.New("unknown placement kind")

// ReadJSON decodes a model document from r.
//
// ReadJSON returns an error if the JSON is malformed, an ID is used twice,
// an endpoint or element reference cannot be resolved, or a placement kind
// is unknown. Errors are wrapped with the ID of the offending object; use
// errors.Is with the model sentinel errors to inspect them.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*model.Model, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc)
}

// Unmarshal decodes a model document from data.
func Unmarshal(data []byte) (*model.Model, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads a JSON file at path and returns the decoded model.
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func fromDocument(doc document) (*model.Model, error) {
	m := model.New(doc.Name)

	for _, e := range doc.Elements {
		el := &model.Element{ID: e.ID, Type: e.Type, Name: e.Name, Documentation: e.Documentation}
		for _, p := range e.Properties {
			el.Properties = append(el.Properties, model.NewProperty(p.Key, p.Value))
		}
		if err := m.AddElement(el); err != nil {
			return nil, fmt.Errorf("element %s: %w", e.ID, err)
		}
	}

	// Endpoints may refer to objects later in the list.
	err := resolve(doc.Relationships, func(r relationship) error {
		return m.AddRelationship(&model.Relationship{
			ID: r.ID, Type: r.Type, Name: r.Name, Source: r.Source, Target: r.Target,
		})
	}, func(r relationship) string { return "relationship " + string(r.ID) })
	if err != nil {
		return nil, err
	}

	for _, d := range doc.Diagrams {
		dg := &model.Diagram{ID: d.ID, Name: d.Name}
		if err := m.AddDiagram(dg); err != nil {
			return nil, fmt.Errorf("diagram %s: %w", d.ID, err)
		}
		if err := addPlacements(m, dg.ID, d.Children); err != nil {
			return nil, err
		}
	}

	err = resolve(doc.Connections, func(c connection) error {
		return m.AddConnection(&model.Connection{
			ID: c.ID, Source: c.Source, Target: c.Target, Relationship: c.Relationship,
		})
	}, func(c connection) string { return "connection " + string(c.ID) })
	if err != nil {
		return nil, err
	}

	return m, nil
}

func addPlacements(m *model.Model, parent model.ID, children []placement) error {
	for _, p := range children {
		kind, ok := kindFromString[p.Kind]
		if !ok {
			return fmt.Errorf("placement %s: %w: %q", p.ID, ErrUnknownKind, p.Kind)
		}
		pl := &model.Placement{ID: p.ID, Kind: kind, Element: p.Element, Name: p.Name}
		if err := m.AddPlacement(parent, pl); err != nil {
			return fmt.Errorf("placement %s: %w", p.ID, err)
		}
		if err := addPlacements(m, pl.ID, p.Children); err != nil {
			return err
		}
	}
	return nil
}

// resolve adds items in order, deferring those whose endpoints are not yet
// known, until a pass makes no progress. Only deferred items change order,
// and only when the document itself lists them before their endpoints.
func resolve[T any](items []T, add func(T) error, describe func(T) string) error {
	pending := items
	for len(pending) > 0 {
		var next []T
		var lastErr error
		for _, it := range pending {
			err := add(it)
			if errors.Is(err, model.ErrUnknownEndpoint) {
				next = append(next, it)
				lastErr = fmt.Errorf("%s: %w", describe(it), err)
				continue
			}
			if err != nil {
				return fmt.Errorf("%s: %w", describe(it), err)
			}
		}
		if len(next) == len(pending) {
			return lastErr
		}
		pending = next
	}
	return nil
}
