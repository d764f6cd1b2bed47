// Package render provides visualization output for model diagrams.
//
// # Overview
//
// Diagrams are drawn by the [nodelink] subpackage, which turns a diagram
// into Graphviz DOT and renders it to SVG in-process. This package adds
// generic format conversion:
//
//	dot, err := nodelink.ToDOT(m, diagramID, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// The [ToPDF] and [ToPNG] functions use the external rsvg-convert tool (from
// librsvg).
//
// [nodelink]: github.com/matzehuels/elementmerge/pkg/render/nodelink
package render
