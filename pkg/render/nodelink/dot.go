package nodelink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/elementmerge/pkg/model"
)

// ErrUnknownDiagram is returned by [ToDOT] for an ID that is not a diagram.
var ErrUnknownDiagram = errors.New("unknown diagram")

// Options configures diagram rendering.
type Options struct {
	// Detailed adds the element ID and properties to element labels.
	Detailed bool
}

// ToDOT converts one diagram of m to Graphviz DOT.
// The result can be rendered with [RenderSVG].
func ToDOT(m *model.Model, diagram model.ID, opts Options) (string, error) {
	d, ok := m.Diagram(diagram)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDiagram, diagram)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", d.Name)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writePlacements(&buf, m, d.Children, opts, 1)

	var conns []*model.Connection
	junctions := make(map[model.ID]bool)
	for _, c := range m.Connections() {
		if c.Diagram != diagram {
			continue
		}
		conns = append(conns, c)
		for _, end := range []model.ID{c.Source, c.Target} {
			if _, isConn := m.Connection(end); isConn {
				junctions[end] = true
			}
		}
	}

	buf.WriteString("\n")
	for _, c := range conns {
		if junctions[c.ID] {
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.05, label=\"\"];\n", c.ID)
		}
	}
	for _, c := range conns {
		label := edgeLabel(m, c)
		if junctions[c.ID] {
			fmt.Fprintf(&buf, "  %q -> %q [arrowhead=none%s];\n", c.Source, c.ID, label)
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.ID, c.Target)
			continue
		}
		if label == "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.Source, c.Target)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.Source, c.Target, strings.TrimPrefix(label, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func writePlacements(buf *bytes.Buffer, m *model.Model, ids []model.ID, opts Options, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, id := range ids {
		p, ok := m.Placement(id)
		if !ok {
			continue
		}
		if p.Kind == model.KindGroup {
			fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+string(p.ID))
			fmt.Fprintf(buf, "%s  label=%q;\n", indent, p.Name)
			fmt.Fprintf(buf, "%s  style=\"rounded,dashed\";\n", indent)
			// Anchor node so connections to the group have an endpoint.
			fmt.Fprintf(buf, "%s  %q [shape=plaintext, style=\"\", label=\"\"];\n", indent, p.ID)
			writePlacements(buf, m, p.Children, opts, depth+1)
			fmt.Fprintf(buf, "%s}\n", indent)
			continue
		}
		fmt.Fprintf(buf, "%s%q [%s];\n", indent, p.ID, strings.Join(fmtAttrs(m, p, opts), ", "))
		writePlacements(buf, m, p.Children, opts, depth)
	}
}

func fmtAttrs(m *model.Model, p *model.Placement, opts Options) []string {
	if p.Kind == model.KindNote {
		return []string{fmt.Sprintf("label=%q", p.Name), "shape=note", "fillcolor=lightyellow"}
	}
	eid, _ := p.UnderlyingElement()
	e, ok := m.Element(eid)
	if !ok {
		return []string{fmt.Sprintf("label=%q", string(eid)), "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey"}
	}
	return []string{fmt.Sprintf("label=%q", fmtLabel(e, opts.Detailed))}
}

func fmtLabel(e *model.Element, detailed bool) string {
	label := e.Name + "\n«" + e.Type + "»"
	if !detailed {
		return label
	}
	parts := []string{"id: " + string(e.ID)}
	for _, p := range e.Properties {
		parts = append(parts, p.Key+": "+p.Value)
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func edgeLabel(m *model.Model, c *model.Connection) string {
	if c.Relationship == "" {
		return ""
	}
	r, ok := m.Relationship(c.Relationship)
	if !ok {
		return ""
	}
	return fmt.Sprintf(", label=%q, fontsize=10", r.Type)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
