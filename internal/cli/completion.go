package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/elementmerge/pkg/io"
	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/store"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ` + appName + `.

Besides commands and flags, the scripts complete stored model names after
"store:", element IDs of the model being merged (narrowed to elements that can
be merged with the ones already given), --target from the selection and
--diagram from the model's diagrams.

Bash:
  $ source <(` + appName + ` completion bash)

Zsh:
  $ ` + appName + ` completion zsh > "${fpath[1]}/_` + appName + `"

Fish:
  $ ` + appName + ` completion fish > ~/.config/fish/completions/` + appName + `.fish

PowerShell:
  PS> ` + appName + ` completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Completion functions
// =============================================================================

// completeModelRef completes a model argument: stored names once the word
// starts with "store:", JSON files otherwise.
func (c *CLI) completeModelRef(cmd *cobra.Command, toComplete string) ([]string, cobra.ShellCompDirective) {
	if !strings.HasPrefix(toComplete, storePrefix) {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return c.completeStoredNames(cmd, toComplete, true)
}

// completeStoredNames lists stored models matching toComplete, with the
// "store:" prefix when prefixed is set.
func (c *CLI) completeStoredNames(cmd *cobra.Command, toComplete string, prefixed bool) ([]string, cobra.ShellCompDirective) {
	st, err := c.openStore(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer st.Close()
	names, err := st.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	prefix := ""
	if prefixed {
		prefix = storePrefix
	}
	return matching(names, prefix, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// storedNameArgs completes the first n positional arguments with stored model
// names, or every argument when n is negative. Names already given are left out.
func (c *CLI) storedNameArgs(n int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if n >= 0 && len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names, directive := c.completeStoredNames(cmd, toComplete, false)
		return slices.DeleteFunc(names, func(name string) bool {
			return slices.Contains(args, name)
		}), directive
	}
}

// modelArgs completes a single model argument.
func (c *CLI) modelArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return c.completeModelRef(cmd, toComplete)
}

// mergeArgs completes "merge <model> <element-id>...".
func (c *CLI) mergeArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return c.completeModelRef(cmd, toComplete)
	}
	m, err := c.peekModel(cmd.Context(), args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return elementCompletions(m, args[1:], toComplete), cobra.ShellCompDirectiveNoFileComp
}

// mergeTargets completes --target with the elements already selected.
func (c *CLI) mergeTargets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) < 2 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	m, err := c.peekModel(cmd.Context(), args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, id := range args[1:] {
		if e, ok := m.Element(model.ID(id)); ok && strings.HasPrefix(id, toComplete) {
			out = append(out, describeElement(e))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// diagramFlag completes --diagram with the diagrams of the model argument.
func (c *CLI) diagramFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	m, err := c.peekModel(cmd.Context(), args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, d := range m.Diagrams() {
		if strings.HasPrefix(string(d.ID), toComplete) {
			out = append(out, fmt.Sprintf("%s\t%s", d.ID, d.Name))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// typeFlag completes --type with the element types used in the model argument.
func (c *CLI) typeFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	m, err := c.peekModel(cmd.Context(), args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var types []string
	for _, e := range m.Elements() {
		if !slices.Contains(types, e.Type) {
			types = append(types, e.Type)
		}
	}
	return matching(types, "", toComplete), cobra.ShellCompDirectiveNoFileComp
}

// peekModel loads a model for completion. Unlike loadModel it prints no
// progress, since anything written would end up in the shell.
func (c *CLI) peekModel(ctx context.Context, ref string) (*model.Model, error) {
	name, stored := strings.CutPrefix(ref, storePrefix)
	if !stored {
		return pkgio.ImportJSON(ref)
	}
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return store.Load(ctx, st, name)
}

// elementCompletions lists elements that may join a merge of chosen. With
// nothing chosen yet every element qualifies; afterwards only elements with
// the type and name of the first chosen one. Each entry carries the element's
// name and type as its description.
func elementCompletions(m *model.Model, chosen []string, toComplete string) []string {
	var first *model.Element
	if len(chosen) > 0 {
		first, _ = m.Element(model.ID(chosen[0]))
	}
	var out []string
	for _, e := range m.Elements() {
		id := string(e.ID)
		if slices.Contains(chosen, id) || !strings.HasPrefix(id, toComplete) {
			continue
		}
		if first != nil && (e.Type != first.Type || e.Name != first.Name) {
			continue
		}
		out = append(out, describeElement(e))
	}
	return out
}

func describeElement(e *model.Element) string {
	name := e.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s\t%s (%s)", e.ID, name, e.Type)
}

// matching returns the names with prefix prepended that start with toComplete.
func matching(names []string, prefix, toComplete string) []string {
	var out []string
	for _, name := range names {
		if s := prefix + name; strings.HasPrefix(s, toComplete) {
			out = append(out, s)
		}
	}
	return out
}
