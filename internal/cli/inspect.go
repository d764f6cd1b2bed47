package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/elementmerge/pkg/merge"
	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/server"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	typ    string // keep only elements of this type
	name   string // keep only elements whose name contains this text
	asJSON bool   // print summaries as JSON
}

// inspectCommand creates the inspect command for listing model elements.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <model>",
		Short: "List the elements of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			summaries := merge.DescribeAll(m, filterElements(m.Elements(), opts.typ, opts.name))
			if opts.asJSON {
				return printJSON(summaries)
			}

			fmt.Println(StyleTitle.Render(modelTitle(m, args[0])))
			printStats(m.Stats())
			printNewline()
			if len(summaries) == 0 {
				printInfo("No matching elements")
				return nil
			}
			fmt.Println(summaryTable(summaries, true, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.typ, "type", "", "only elements of this type")
	cmd.Flags().StringVar(&opts.name, "name", "", "only elements whose name contains this text (case-insensitive)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")

	cmd.ValidArgsFunction = c.modelArgs
	_ = cmd.RegisterFlagCompletionFunc("type", c.typeFlag)

	return cmd
}

// candidatesCommand creates the candidates command for finding duplicates.
func (c *CLI) candidatesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "candidates <model>",
		Short: "Find elements sharing a type and name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			groups := merge.FindDuplicates(m)
			if asJSON {
				out := make([]server.CandidateGroup, len(groups))
				for i, g := range groups {
					out[i] = server.CandidateGroup{Type: g.Type, Name: g.Name, Elements: merge.DescribeAll(m, g.Elements)}
				}
				return printJSON(out)
			}

			if len(groups) == 0 {
				printSuccess("No duplicate elements in %s", modelTitle(m, args[0]))
				return nil
			}
			printWarning("%d duplicate group(s) in %s", len(groups), modelTitle(m, args[0]))
			for _, g := range groups {
				printNewline()
				fmt.Println(StyleTitle.Render(g.Name) + " " + StyleDim.Render("«"+g.Type+"»"))
				fmt.Println(summaryTable(merge.DescribeAll(m, g.Elements), false, nil))
				printNextStep("Merge with", mergeHint(args[0], g.IDs()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.ValidArgsFunction = c.modelArgs

	return cmd
}

// filterElements keeps elements matching typ exactly and containing name,
// ignoring case. Empty filters match everything.
func filterElements(elements []*model.Element, typ, name string) []*model.Element {
	if typ == "" && name == "" {
		return elements
	}
	name = strings.ToLower(name)
	var out []*model.Element
	for _, e := range elements {
		if typ != "" && e.Type != typ {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(e.Name), name) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// summaryTable renders element summaries as a table. styleRow, if set,
// overrides the style of data rows.
func summaryTable(rows []merge.Summary, withType bool, styleRow func(row, col int) lipgloss.Style) string {
	headers := []string{"ID", "Name", "Used In (Views)", "Relations", "Properties Preview"}
	if withType {
		headers = []string{"ID", "Type", "Name", "Used In (Views)", "Relations", "Properties Preview"}
	}

	data := make([][]string, len(rows))
	for i, s := range rows {
		usedIn := strings.Join(s.UsedIn, ", ")
		if usedIn == "" {
			usedIn = "—"
		}
		props := s.Properties
		if props == "" {
			props = "—"
		}
		row := []string{string(s.ID), s.Name, usedIn, strconv.Itoa(len(s.Relations)), props}
		if withType {
			row = []string{string(s.ID), s.Type, s.Name, usedIn, strconv.Itoa(len(s.Relations)), props}
		}
		data[i] = row
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if styleRow != nil {
				return styleRow(row, col)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func modelTitle(m *model.Model, ref string) string {
	if m.Name != "" {
		return m.Name
	}
	return ref
}

func mergeHint(ref string, ids []model.ID) string {
	parts := []string{appName, "merge", ref}
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, " ")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
