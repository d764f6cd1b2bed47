package io

import "github.com/matzehuels/elementmerge/pkg/model"

type document struct {
	Name          string         `json:"name,omitempty"`
	Elements      []element      `json:"elements"`
	Relationships []relationship `json:"relationships"`
	Diagrams      []diagram      `json:"diagrams"`
	Connections   []connection   `json:"connections"`
}

type element struct {
	ID            model.ID   `json:"id"`
	Type          string     `json:"type"`
	Name          string     `json:"name,omitempty"`
	Documentation string     `json:"documentation,omitempty"`
	Properties    []property `json:"properties,omitempty"`
}

type property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type relationship struct {
	ID     model.ID `json:"id"`
	Type   string   `json:"type"`
	Name   string   `json:"name,omitempty"`
	Source model.ID `json:"source"`
	Target model.ID `json:"target"`
}

type diagram struct {
	ID       model.ID    `json:"id"`
	Name     string      `json:"name,omitempty"`
	Children []placement `json:"children,omitempty"`
}

type placement struct {
	ID       model.ID    `json:"id"`
	Kind     string      `json:"kind,omitempty"`
	Element  model.ID    `json:"element,omitempty"`
	Name     string      `json:"name,omitempty"`
	Children []placement `json:"children,omitempty"`
}

type connection struct {
	ID           model.ID `json:"id"`
	Source       model.ID `json:"source"`
	Target       model.ID `json:"target"`
	Relationship model.ID `json:"relationship,omitempty"`
}

var kindToString = map[model.Kind]string{
	model.KindNote:  "note",
	model.KindGroup: "group",
}

var kindFromString = map[string]model.Kind{
	"":        model.KindElement,
	"element": model.KindElement,
	"note":    model.KindNote,
	"group":   model.KindGroup,
}
