package cli

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	pkgio "github.com/matzehuels/elementmerge/pkg/io"
)

func TestElementCompletions(t *testing.T) {
	dir := testEnv(t)
	m, err := pkgio.ImportJSON(writeModel(t, dir))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		chosen     []string
		toComplete string
		want       []string
	}{
		{"nothing chosen", nil, "", []string{"A\tCustomer (BusinessActor)", "B\tCustomer (BusinessActor)", "X\tBuyer (BusinessRole)"}},
		{"narrowed to mergeable", []string{"A"}, "", []string{"B\tCustomer (BusinessActor)"}},
		{"prefix", nil, "X", []string{"X\tBuyer (BusinessRole)"}},
		{"nothing left", []string{"X"}, "", nil},
		{"unknown first choice", []string{"Z"}, "", []string{"A\tCustomer (BusinessActor)", "B\tCustomer (BusinessActor)", "X\tBuyer (BusinessRole)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := elementCompletions(m, tt.chosen, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("elementCompletions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatching(t *testing.T) {
	names := []string{"shop", "shipping", "billing"}
	if got := matching(names, storePrefix, "store:sh"); !slices.Equal(got, []string{"store:shop", "store:shipping"}) {
		t.Errorf("matching() = %v", got)
	}
	if got := matching(names, "", "b"); !slices.Equal(got, []string{"billing"}) {
		t.Errorf("matching() = %v", got)
	}
}

// complete runs cobra's hidden completion command and returns the offered
// candidates without the trailing directive line.
func complete(t *testing.T, args ...string) []string {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs(append([]string{"__complete"}, args...))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if !strings.HasPrefix(line, ":") {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestShellCompletion(t *testing.T) {
	dir := testEnv(t)
	path := writeModel(t, dir)
	if err := execute(t, "store", "put", "shop", path); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"merge elements", []string{"merge", path, "B", ""}, []string{"A\tCustomer (BusinessActor)"}},
		{"merge stored model", []string{"merge", "store:s"}, []string{"store:shop"}},
		{"merge from stored model", []string{"merge", "store:shop", "X", ""}, nil},
		{"target", []string{"merge", path, "A", "B", "--target", ""}, []string{"A\tCustomer (BusinessActor)", "B\tCustomer (BusinessActor)"}},
		{"diagram", []string{"render", path, "--diagram", ""}, []string{"D\tMain"}},
		{"type", []string{"inspect", path, "--type", "Business"}, []string{"BusinessActor", "BusinessRole"}},
		{"store get", []string{"store", "get", ""}, []string{"shop"}},
		{"store rm skips given", []string{"store", "rm", "shop", ""}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := complete(t, tt.args...); !slices.Equal(got, tt.want) {
				t.Errorf("completions = %q, want %q", got, tt.want)
			}
		})
	}
}
