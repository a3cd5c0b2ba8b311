package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		lower bool
		want  string
	}{
		{name: "empty", s: "", want: ""},
		{name: "only whitespace", s: " \t\n ", want: ""},
		{name: "leading and trailing", s: "  Kevin ", want: "Kevin"},
		{name: "inner whitespace kept", s: " Mary  Ann\t", want: "Mary  Ann"},
		{name: "lower", s: " Awe@Test.CD ", lower: true, want: "awe@test.cd"},
		{name: "unchanged", s: "Trainor", want: "Trainor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.s, tt.lower); got != tt.want {
				t.Errorf("CleanString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectRoot(t *testing.T) {
	root, err := ProjectRoot()
	if err != nil {
		t.Fatalf("ProjectRoot() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Errorf("ProjectRoot() = %s, no go.mod found there", root)
	}
}
