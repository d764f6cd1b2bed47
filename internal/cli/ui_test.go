package cli

import (
	"testing"

	"github.com/matzehuels/elementmerge/pkg/model"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name  string
		stats model.Stats
		want  string
	}{
		{"empty", model.Stats{}, ""},
		{"skips zero counts", model.Stats{Elements: 3, Diagrams: 1}, "3 elements · 1 diagrams"},
		{"all", model.Stats{Elements: 3, Relationships: 1, Diagrams: 1, Placements: 3, Connections: 1},
			"3 elements · 1 relationships · 1 diagrams · 3 placements · 1 connections"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statsLine(tt.stats); got != tt.want {
				t.Errorf("statsLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
