// Package nodelink renders model diagrams as node-link pictures.
//
// # Overview
//
// A diagram's placements become Graphviz nodes and its connections become
// edges. Groups are drawn as clusters containing their nested placements,
// notes as note-shaped nodes, and element placements as rounded boxes
// labelled with the element's name and type.
//
// Connections may end on other connections. Such a connection is drawn
// through a small junction point so that edges can attach to it.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(m, diagramID, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: element labels also show the element ID and its properties
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion lives in the parent render package.
package nodelink
