package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
)

func full() Selection {
	return Selection{
		Framework:   "langgraph",
		ProjectType: "agentic_rag",
		Pipeline:    "github_actions",
		Runtime:     "container_apps",
		IaC:         "terraform",
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("flags win over defaults", func(t *testing.T) {
		defaults := Selection{Framework: "crewai", Runtime: "aks"}
		got, err := Resolve(ctx, full(), defaults, false, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != full() {
			t.Errorf("Resolve() = %v, want %v", got, full())
		}
	})

	t.Run("defaults fill gaps", func(t *testing.T) {
		given := full()
		given.Runtime = ""
		got, err := Resolve(ctx, given, Selection{Runtime: "aks"}, false, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got.Runtime != "aks" {
			t.Errorf("Runtime = %q, want aks", got.Runtime)
		}
	})

	t.Run("non-interactive missing fails", func(t *testing.T) {
		_, err := Resolve(ctx, Selection{Framework: "langgraph"}, Selection{}, false, nil)
		if !errors.Is(err, ErrMissingOption) {
			t.Fatalf("error = %v, want ErrMissingOption", err)
		}
		for _, flag := range []string{"--project-type", "--pipeline", "--runtime", "--iac"} {
			if !strings.Contains(err.Error(), flag) {
				t.Errorf("error %q does not name %s", err, flag)
			}
		}
	})

	t.Run("interactive prompts only missing", func(t *testing.T) {
		given := full()
		given.Pipeline = ""
		given.IaC = ""

		var asked []adapters.Category
		prompt := func(ctx context.Context, missing []adapters.Category) (Selection, error) {
			asked = missing
			return Selection{Framework: "crewai", Pipeline: "azure_devops", IaC: "bicep"}, nil
		}

		got, err := Resolve(ctx, given, Selection{}, true, prompt)
		if err != nil {
			t.Fatal(err)
		}
		if len(asked) != 2 || asked[0] != adapters.Pipeline || asked[1] != adapters.IaC {
			t.Errorf("prompted for %v, want [pipeline iac]", asked)
		}
		if got.Framework != "langgraph" || got.Pipeline != "azure_devops" || got.IaC != "bicep" {
			t.Errorf("Resolve() = %v", got)
		}
	})

	t.Run("prompt error propagates", func(t *testing.T) {
		boom := errors.New("aborted")
		_, err := Resolve(ctx, Selection{}, Selection{}, true, func(context.Context, []adapters.Category) (Selection, error) {
			return Selection{}, boom
		})
		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want %v", err, boom)
		}
	})
}

func TestValidateCombination(t *testing.T) {
	valid := []Selection{
		{"microsoft_agent_framework", "multi_agent_api", "github_actions", "aks", "bicep"},
		{"langgraph", "agentic_rag", "github_actions", "aks", "bicep"},
		{"crewai", "multi_agent_api", "github_actions", "container_apps", "terraform"},
		full(),
	}
	for _, sel := range valid {
		if err := ValidateCombination(sel); err != nil {
			t.Errorf("ValidateCombination(%v) = %v", sel, err)
		}
	}

	bad := full()
	bad.Framework = "nonexistent_framework"

	err := ValidateCombination(bad)
	var invalid *InvalidCombinationError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want *InvalidCombinationError", err)
	}
	if invalid.Framework != "nonexistent_framework" || invalid.IaC != "terraform" {
		t.Errorf("error carries %v", invalid.Selection)
	}
	if !strings.Contains(err.Error(), "unsupported combination") {
		t.Errorf("message = %q", err)
	}
}

func TestMatrix(t *testing.T) {
	m := NewMatrix()
	if got := len(m.Combinations()); got != 4*3*2*3*2 {
		t.Fatalf("full cross product has %d combinations, want 144", got)
	}

	m.Withdraw(full())
	if m.Allows(full()) {
		t.Error("withdrawn combination still allowed")
	}
	if got := len(m.Combinations()); got != 143 {
		t.Errorf("after withdraw: %d combinations, want 143", got)
	}
	if err := ValidateCombination(full()); err != nil {
		t.Error("withdrawing from a private matrix changed the default matrix")
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    Defaults
		wantErr bool
	}{
		{
			name:    "toml",
			file:    "config.toml",
			content: "[defaults]\nframework = \"crewai\"\niac = \"bicep\"\ntemplate_version = \"1.2.0\"\n",
			want:    Defaults{Framework: "crewai", IaC: "bicep", TemplateVersion: "1.2.0"},
		},
		{
			name:    "yaml",
			file:    "config.yaml",
			content: "defaults:\n  runtime: aks\n  pipeline: azure_devops\n",
			want:    Defaults{Runtime: "aks", Pipeline: "azure_devops"},
		},
		{
			name:    "json",
			file:    "config.json",
			content: `{"defaults": {"project_type": "agentic_rag"}}`,
			want:    Defaults{ProjectType: "agentic_rag"},
		},
		{
			name:    "unknown toml key",
			file:    "bad.toml",
			content: "[defaults]\nframwork = \"crewai\"\n",
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    "config.ini",
			content: "framework=crewai",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := LoadDefaults(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("LoadDefaults() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadDefaults: %v", err)
			}
			if got != tt.want {
				t.Errorf("LoadDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, err := LoadDefaults(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("explicit missing defaults file should fail")
	}
}

func TestNames(t *testing.T) {
	if got := FlagName(adapters.ProjectType); got != "project-type" {
		t.Errorf("FlagName = %q", got)
	}
	if got := EnvVar(adapters.IaC); got != "AASP_IAC" {
		t.Errorf("EnvVar = %q", got)
	}
}
