package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/elementmerge/pkg/merge"
	"github.com/matzehuels/elementmerge/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TargetPickerModel - Interactive merge target selection
// =============================================================================

// TargetPickerModel is the bubbletea model for choosing the element the
// others are merged into.
type TargetPickerModel struct {
	Elements        []merge.Summary
	Cursor          int
	Offset          int
	Height          int
	MergeProperties bool

	// Chosen is set when the user confirms; a model that quits without it
	// was cancelled.
	Chosen *merge.Choice
}

// NewTargetPickerModel creates a picker over the given summaries.
func NewTargetPickerModel(elements []merge.Summary, mergeProperties bool) TargetPickerModel {
	return TargetPickerModel{
		Elements:        elements,
		Height:          10,
		MergeProperties: mergeProperties,
	}
}

func (m TargetPickerModel) Init() tea.Cmd {
	return nil
}

func (m TargetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Elements)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "p", " ":
			m.MergeProperties = !m.MergeProperties
		case "enter":
			if len(m.Elements) == 0 {
				return m, nil
			}
			m.Chosen = &merge.Choice{
				Target:          m.Elements[m.Cursor].ID,
				MergeProperties: m.MergeProperties,
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m TargetPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(merge.Label))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("Select the element to keep. The others are merged into it."))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  p toggle properties  ⏎ merge  q cancel"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Elements))
	visible := m.Elements[m.Offset:end]
	b.WriteString(summaryTable(visible, false, func(row, col int) lipgloss.Style {
		if m.Offset+row == m.Cursor {
			return listSelectedStyle
		}
		if col == 0 {
			return listDimStyle
		}
		return listNormalStyle
	}))
	b.WriteString("\n\n")

	check := "[ ]"
	if m.MergeProperties {
		check = StyleSuccess.Render("[x]")
	}
	b.WriteString(fmt.Sprintf("%s Merge documentation and properties into the target\n", check))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Elements))))

	return b.String()
}

// =============================================================================
// Interactive Chooser
// =============================================================================

// pickerChooser asks the user for a merge target with a TargetPickerModel.
type pickerChooser struct {
	model *model.Model
	in    io.Reader
	out   io.Writer
}

func (c pickerChooser) Choose(ctx context.Context, elements []*model.Element, defaultMerge bool) (merge.Choice, error) {
	picker := NewTargetPickerModel(merge.DescribeAll(c.model, elements), defaultMerge)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.in != nil {
		opts = append(opts, tea.WithInput(c.in))
	}
	if c.out != nil {
		opts = append(opts, tea.WithOutput(c.out))
	}

	final, err := tea.NewProgram(picker, opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return merge.Choice{}, ctxErr
	}
	if err != nil {
		return merge.Choice{}, fmt.Errorf("target picker: %w", err)
	}
	result, ok := final.(TargetPickerModel)
	if !ok || result.Chosen == nil {
		return merge.Choice{}, merge.ErrCancelled
	}
	return *result.Chosen, nil
}
