package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/render"
	"github.com/matzehuels/elementmerge/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"

	defaultPNGScale = 2.0
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	diagram  string   // diagram ID or name
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "dot", "svg", "pdf", "png"
	detailed bool     // include element IDs and properties in labels
	scale    float64  // PNG scale factor
}

// renderCommand creates the render command for drawing a diagram.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: defaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render <model>",
		Short: "Render a diagram of a model",
		Long: `Render one diagram of a model as Graphviz DOT, SVG, PDF or PNG.

Element placements become boxes labelled with name and type, groups become
clusters and notes become note shapes. PDF and PNG need rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.diagram, "diagram", "d", "", "diagram ID or name (default: the only diagram)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show element IDs and properties in labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	cmd.ValidArgsFunction = c.modelArgs
	_ = cmd.RegisterFlagCompletionFunc("diagram", c.diagramFlag)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{formatSVG, formatDOT, formatPDF, formatPNG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPDF: true, formatPNG: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input and appends the
// diagram name. If output has a format extension, that extension is stripped.
func basePath(output, input, diagram string) string {
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(strings.TrimPrefix(input, storePrefix)), filepath.Ext(input))
		return base + "_" + sanitizeFileName(diagram)
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// sanitizeFileName replaces characters that are awkward in file names.
func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == ' ':
			return '_'
		case r < 0x20:
			return -1
		}
		return r
	}, s)
}

// findDiagram resolves ref as a diagram ID, then as a diagram name. An empty
// ref selects the only diagram of m.
func findDiagram(m *model.Model, ref string) (*model.Diagram, error) {
	diagrams := m.Diagrams()
	if ref == "" {
		switch len(diagrams) {
		case 0:
			return nil, fmt.Errorf("model has no diagrams")
		case 1:
			return diagrams[0], nil
		}
		names := make([]string, len(diagrams))
		for i, d := range diagrams {
			names[i] = fmt.Sprintf("%s (%s)", d.Name, d.ID)
		}
		return nil, fmt.Errorf("model has %d diagrams, choose one with --diagram: %s", len(diagrams), strings.Join(names, ", "))
	}
	if d, ok := m.Diagram(model.ID(ref)); ok {
		return d, nil
	}
	for _, d := range diagrams {
		if d.Name == ref {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", nodelink.ErrUnknownDiagram, ref)
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	m, err := c.loadModel(ctx, input)
	if err != nil {
		return err
	}
	d, err := findDiagram(m, opts.diagram)
	if err != nil {
		return err
	}
	logger.Infof("Rendering diagram %q", d.Name)

	dot, err := nodelink.ToDOT(m, d.ID, nodelink.Options{Detailed: opts.detailed})
	if err != nil {
		return err
	}

	base := basePath(opts.output, input, d.Name)
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := renderAndWrite(ctx, dot, format, path, opts); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

// renderAndWrite renders dot in one format and writes it to path. A path of
// "-" writes to stdout.
func renderAndWrite(ctx context.Context, dot, format, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	var data []byte
	if format == formatDOT {
		data = []byte(dot)
	} else {
		step := startStep(ctx, "Rendering %s", format)
		var err error
		data, err = renderDOT(ctx, dot, format, opts.scale)
		if err := step.done(err, "Rendered "+format); err != nil {
			return err
		}
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "-" {
		printFile(path)
	}
	return nil
}

func renderDOT(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case formatSVG:
		return svg, nil
	case formatPDF:
		return render.ToPDF(ctx, svg)
	case formatPNG:
		return render.ToPNG(ctx, svg, scale)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// openOutput returns a writer for path; "-" or an empty path is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
