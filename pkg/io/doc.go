// Package io provides JSON import and export for model documents.
//
// # Overview
//
// A model document is the serialised form of a [model.Model]: its elements,
// relationships, diagrams with their nested placements, and connections.
// The same format is used for files on disk, for documents kept in a
// [store.Store], and for HTTP responses.
//
// # JSON Format
//
//	{
//	  "name": "Archisurance",
//	  "elements": [
//	    {"id": "a", "type": "BusinessActor", "name": "Customer",
//	     "documentation": "...", "properties": [{"key": "k", "value": "v"}]}
//	  ],
//	  "relationships": [
//	    {"id": "r", "type": "Assignment", "source": "a", "target": "b"}
//	  ],
//	  "diagrams": [
//	    {"id": "d", "name": "Overview", "children": [
//	      {"id": "p1", "element": "a"},
//	      {"id": "g", "kind": "group", "name": "Actors", "children": [
//	        {"id": "p2", "element": "b"}
//	      ]}
//	    ]}
//	  ],
//	  "connections": [
//	    {"id": "c", "source": "p1", "target": "p2", "relationship": "r"}
//	  ]
//	}
//
// Placement kinds are "element" (the default when omitted), "note" and
// "group". Objects without an "id" get a fresh one on import.
//
// Relationships may point at other relationships and connections at other
// connections. Forward references are resolved in further passes.
//
// # Import
//
// Use [ImportJSON] to read a model from a file path, [ReadJSON] to read from
// any io.Reader, or [Unmarshal] for bytes:
//
//	m, err := io.ImportJSON("model.json")
//
// Structural errors (duplicate IDs, dangling endpoints, unknown element
// references) are wrapped with the ID of the offending object.
//
// # Export
//
// Use [ExportJSON], [WriteJSON] or [Marshal]. Only attached placements are
// written; placements removed by a merge are not part of the document.
//
// [store.Store]: github.com/matzehuels/elementmerge/pkg/store.Store
package io
