package adapters

import (
	"errors"
	"slices"
	"testing"
)

func TestRegisteredNames(t *testing.T) {
	tests := []struct {
		category Category
		names    []string
	}{
		{Framework, []string{"microsoft_agent_framework", "langgraph", "google_adk", "crewai"}},
		{ProjectType, []string{"multi_agent_api", "multi_agent_react_ui", "agentic_rag"}},
		{Pipeline, []string{"github_actions", "azure_devops"}},
		{Runtime, []string{"aks", "container_apps", "app_service"}},
		{IaC, []string{"bicep", "terraform"}},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			if got := Names(tt.category); !slices.Equal(got, tt.names) {
				t.Fatalf("Names() = %v, want %v", got, tt.names)
			}

			for _, name := range tt.names {
				a, err := Get(tt.category, name)
				if err != nil {
					t.Fatalf("Get(%q): %v", name, err)
				}
				if a.Name != name || a.Category != tt.category {
					t.Errorf("Get(%q) = %+v", name, a)
				}
				if a.Display == "" {
					t.Errorf("%s has no display name", name)
				}
				if got := a.Context[tt.category.String()]; got != name {
					t.Errorf("%s contributes %s=%v, want its own name", name, tt.category, got)
				}
			}
		})
	}
}

func TestGetUnknown(t *testing.T) {
	for _, c := range Categories {
		if _, err := Get(c, "unknown"); !errors.Is(err, ErrNotRegistered) {
			t.Errorf("%s: error = %v, want ErrNotRegistered", c, err)
		}
	}
}

func TestGetReturnsFreshCopy(t *testing.T) {
	a, err := Get(Framework, "langgraph")
	if err != nil {
		t.Fatal(err)
	}
	a.Context["graph_nodes"] = false
	a.Context["injected"] = true

	b, err := Get(Framework, "langgraph")
	if err != nil {
		t.Fatal(err)
	}
	if b.Context["graph_nodes"] != true {
		t.Error("mutating a returned adapter leaked into the registry")
	}
	if _, ok := b.Context["injected"]; ok {
		t.Error("added key leaked into the registry")
	}
}

func TestOverlays(t *testing.T) {
	tests := []struct {
		category Category
		name     string
		overlay  string
	}{
		{Framework, "langgraph", "langgraph"},
		{ProjectType, "agentic_rag", ""},
		{Pipeline, "github_actions", "pipelines/github_actions"},
		{Runtime, "container_apps", "runtimes/container_apps"},
		{IaC, "terraform", "iac/terraform"},
	}

	for _, tt := range tests {
		a, err := Get(tt.category, tt.name)
		if err != nil {
			t.Fatal(err)
		}
		if a.Overlay != tt.overlay {
			t.Errorf("%s overlay = %q, want %q", tt.name, a.Overlay, tt.overlay)
		}
	}
}

func TestFeatureKeys(t *testing.T) {
	keys := FeatureKeys()
	if !slices.IsSorted(keys) {
		t.Errorf("FeatureKeys not sorted: %v", keys)
	}
	for _, want := range []string{"fastapi", "react_frontend", "dapr", "sast", "graph_nodes"} {
		if !slices.Contains(keys, want) {
			t.Errorf("FeatureKeys missing %q", want)
		}
	}
	for _, notWant := range []string{"framework", "runtime_display"} {
		if slices.Contains(keys, notWant) {
			t.Errorf("FeatureKeys includes string key %q", notWant)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := ProjectType.Label(); got != "Project type" {
		t.Errorf("ProjectType.Label() = %q", got)
	}
	if got := Runtime.Label(); got != "Runtime" {
		t.Errorf("Runtime.Label() = %q", got)
	}
}
