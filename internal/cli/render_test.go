package cli

import (
	"errors"
	"testing"

	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/render/nodelink"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"dot", []string{"dot"}},
		{"svg,png", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"dot", "svg", "pdf", "png"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"svg", "json"}); err == nil {
		t.Error("json should be rejected")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		diagram string
		want    string
	}{
		{"derived from input", "", "models/shop.json", "Main View", "shop_Main_View"},
		{"derived from store ref", "", "store:shop", "Main", "shop_Main"},
		{"strips format extension", "out/view.svg", "shop.json", "Main", "out/view"},
		{"keeps other extension", "out/view.v2", "shop.json", "Main", "out/view.v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input, tt.diagram); got != tt.want {
				t.Errorf("basePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := sanitizeFileName("a/b\\c:d e\x01"); got != "a_b_c_d_e" {
		t.Errorf("sanitizeFileName() = %q", got)
	}
}

func TestFindDiagram(t *testing.T) {
	m := model.New("m")
	if _, err := findDiagram(m, ""); err == nil {
		t.Error("expected error for model without diagrams")
	}

	if err := m.AddDiagram(&model.Diagram{ID: "d1", Name: "Main"}); err != nil {
		t.Fatal(err)
	}
	d, err := findDiagram(m, "")
	if err != nil || d.ID != "d1" {
		t.Fatalf("only diagram: %v, %v", d, err)
	}

	if err := m.AddDiagram(&model.Diagram{ID: "d2", Name: "Other"}); err != nil {
		t.Fatal(err)
	}
	if _, err := findDiagram(m, ""); err == nil {
		t.Error("expected error when several diagrams exist")
	}
	if d, err := findDiagram(m, "d2"); err != nil || d.Name != "Other" {
		t.Errorf("by ID: %v, %v", d, err)
	}
	if d, err := findDiagram(m, "Main"); err != nil || d.ID != "d1" {
		t.Errorf("by name: %v, %v", d, err)
	}
	if _, err := findDiagram(m, "nope"); !errors.Is(err, nodelink.ErrUnknownDiagram) {
		t.Errorf("unknown: %v", err)
	}
}
