package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
)

var testSelection = config.Selection{
	Framework:   "microsoft_agent_framework",
	ProjectType: "multi_agent_api",
	Pipeline:    "github_actions",
	Runtime:     "aks",
	IaC:         "bicep",
}

func TestWriteRead(t *testing.T) {
	root := t.TempDir()

	m := New(testSelection, "1.0.0", []string{"src/identity.py", "README.md", "README.md", ".github/workflows/ci.yml"})
	if err := m.Write(root); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, ".azure-agent-starter-pack", "manifest.json"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "}\n") {
		t.Error("manifest does not end with a newline")
	}
	for _, want := range []string{
		`"schema_version": "1"`,
		`"cli_tool": "azure-agent-starter-pack"`,
		`"template_version": "1.0.0"`,
		`"project_type": "multi_agent_api"`,
		"\n  \"owned_paths\": [",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("manifest missing %s:\n%s", want, text)
		}
	}

	got, err := Read(root)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Config != testSelection {
		t.Errorf("config = %+v", got.Config)
	}
	if got.CLIVersion != version.String() {
		t.Errorf("cli_version = %q", got.CLIVersion)
	}
	if want := []string{".github/workflows/ci.yml", "README.md", "src/identity.py"}; !slices.Equal(got.OwnedPaths, want) {
		t.Errorf("owned = %v, want %v", got.OwnedPaths, want)
	}
	if !got.Owned().Has("README.md") || got.Owned().Has("notes.txt") {
		t.Error("Owned() membership is wrong")
	}
}

func TestWriteOverwrites(t *testing.T) {
	root := t.TempDir()

	if err := New(testSelection, "0.0.1", []string{"a", "b"}).Write(root); err != nil {
		t.Fatal(err)
	}
	if err := New(testSelection, "1.0.0", []string{"c"}).Write(root); err != nil {
		t.Fatal(err)
	}

	got, err := Read(root)
	if err != nil {
		t.Fatal(err)
	}
	if got.TemplateVersion != "1.0.0" || !slices.Equal(got.OwnedPaths, []string{"c"}) {
		t.Errorf("got %+v", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"missing", "", ErrNoManifest},
		{"malformed", "{not json", nil},
		{"schema", `{"schema_version": "2", "owned_paths": []}`, ErrUnsupportedSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.content != "" {
				if err := os.MkdirAll(filepath.Join(root, Dir), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(Path(root), []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			_, err := Read(root)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && errors.Is(err, ErrNoManifest) {
				t.Errorf("malformed manifest reported as missing: %v", err)
			}
		})
	}
}

func TestEmptyOwnedPathsEncodeAsList(t *testing.T) {
	root := t.TempDir()
	if err := New(testSelection, "1.0.0", nil).Write(root); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(Path(root))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"owned_paths": []`) {
		t.Errorf("owned_paths not an empty list:\n%s", data)
	}
}
