package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/manifest"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/templates"
)

// initProject scaffolds apiSelection and returns its root.
func initProject(t *testing.T, locator *templates.Locator) string {
	t.Helper()
	target := filepath.Join(t.TempDir(), "proj")
	if _, err := Init(context.Background(), newConfig(target, apiSelection), WithLocator(locator)); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return target
}

// rewriteManifest applies edit to the manifest under root.
func rewriteManifest(t *testing.T, root string, edit func(m *manifest.Manifest)) {
	t.Helper()
	m, err := manifest.Read(root)
	if err != nil {
		t.Fatal(err)
	}
	edit(m)
	if err := m.Write(root); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUpgradeUpToDate(t *testing.T) {
	locator := bundledLocator(t)
	root := initProject(t, locator)
	writeFile(t, root, "README.md", "edited")

	res, err := Upgrade(context.Background(), root, UpgradeOptions{}, WithLocator(locator))
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != UpToDate || res.From != "1.0.0" || res.To != "1.0.0" {
		t.Errorf("result = %+v", res)
	}
	if readFile(t, root, "README.md") != "edited" {
		t.Error("up to date upgrade wrote files")
	}
}

func TestUpgradeNoManifest(t *testing.T) {
	_, err := Upgrade(context.Background(), t.TempDir(), UpgradeOptions{}, WithLocator(bundledLocator(t)))
	if !errors.Is(err, manifest.ErrNoManifest) {
		t.Fatalf("error = %v, want ErrNoManifest", err)
	}
}

func TestUpgradeDryRun(t *testing.T) {
	locator := bundledLocator(t)
	root := initProject(t, locator)

	rewriteManifest(t, root, func(m *manifest.Manifest) { m.TemplateVersion = "0.0.1" })
	writeFile(t, root, "README.md", "edited")
	before, err := os.ReadFile(manifest.Path(root))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Upgrade(context.Background(), root, UpgradeOptions{DryRun: true}, WithLocator(locator))
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != DryRun || res.From != "0.0.1" || res.To != "1.0.0" {
		t.Errorf("result = %+v", res)
	}
	if res.OwnedCount == 0 || len(res.Updated) != res.OwnedCount || len(res.Skipped) != 0 {
		t.Errorf("partition: owned=%d updated=%d skipped=%d", res.OwnedCount, len(res.Updated), len(res.Skipped))
	}

	if readFile(t, root, "README.md") != "edited" {
		t.Error("dry run wrote files")
	}
	after, err := os.ReadFile(manifest.Path(root))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("dry run rewrote the manifest")
	}
}

func TestUpgradeApplies(t *testing.T) {
	locator := bundledLocator(t)
	root := initProject(t, locator)

	rewriteManifest(t, root, func(m *manifest.Manifest) {
		m.TemplateVersion = "0.0.1"
		m.OwnedPaths = slices.DeleteFunc(m.OwnedPaths, func(p string) bool { return p == "run.py" })
		m.OwnedPaths = append(m.OwnedPaths, "legacy/old.txt")
	})

	// owned and edited: refreshed
	writeFile(t, root, "README.md", "edited")
	// exists but not owned: left alone
	writeFile(t, root, "run.py", "print('mine')\n")
	// owned and deleted: recreated
	if err := os.Remove(filepath.Join(root, "src", "config.py")); err != nil {
		t.Fatal(err)
	}
	// owned before, no longer rendered: reported, kept on disk
	writeFile(t, root, "legacy/old.txt", "old")
	// user file unrelated to the templates
	writeFile(t, root, "notes.md", "notes")

	res, err := Upgrade(context.Background(), root, UpgradeOptions{}, WithLocator(locator))
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}

	if res.Outcome != Applied || res.From != "0.0.1" || res.To != "1.0.0" {
		t.Errorf("result = %+v", res)
	}
	if !slices.Equal(res.Skipped, []string{"run.py"}) {
		t.Errorf("skipped = %v", res.Skipped)
	}
	if !slices.Equal(res.Orphaned, []string{"legacy/old.txt"}) {
		t.Errorf("orphaned = %v", res.Orphaned)
	}
	for _, rel := range []string{"README.md", "src/config.py"} {
		if !slices.Contains(res.Updated, rel) {
			t.Errorf("%s not updated", rel)
		}
	}

	if got := readFile(t, root, "README.md"); got == "edited" {
		t.Error("owned README.md was not refreshed")
	}
	if got := readFile(t, root, "run.py"); got != "print('mine')\n" {
		t.Errorf("unowned run.py was overwritten: %q", got)
	}
	if _, err := os.Stat(filepath.Join(root, "src", "config.py")); err != nil {
		t.Error("missing owned file was not recreated")
	}
	if readFile(t, root, "legacy/old.txt") != "old" || readFile(t, root, "notes.md") != "notes" {
		t.Error("user files were touched")
	}

	m, err := manifest.Read(root)
	if err != nil {
		t.Fatal(err)
	}
	if m.TemplateVersion != "1.0.0" {
		t.Errorf("template_version = %q", m.TemplateVersion)
	}
	owned := m.Owned()
	if !owned.Has("run.py") || !owned.Has("README.md") {
		t.Error("owned set is not the full rendered set")
	}
	if owned.Has("legacy/old.txt") || owned.Has("notes.md") {
		t.Error("owned set kept paths that are not rendered")
	}
	if owned.Len() != len(res.Updated)+len(res.Skipped) {
		t.Errorf("owned = %d, rendered = %d", owned.Len(), len(res.Updated)+len(res.Skipped))
	}

	again, err := Upgrade(context.Background(), root, UpgradeOptions{}, WithLocator(locator))
	if err != nil {
		t.Fatal(err)
	}
	if again.Outcome != UpToDate {
		t.Errorf("second upgrade outcome = %v", again.Outcome)
	}
}

func TestUpgradeFromCachedVersion(t *testing.T) {
	locator := bundledLocator(t)
	root := initProject(t, locator)

	src := t.TempDir()
	writeFile(t, src, "version.txt", "2.0.0\n")
	writeFile(t, src, "_common/README.md.j2", "# {{ .project_name }} v2\n")
	writeFile(t, src, "_common/CHANGELOG.md", "2.0.0\n")
	writeFile(t, src, "microsoft_agent_framework/multi_agent_api/app/main.py.j2", "# {{ .framework }}\n")
	if _, err := locator.Cache().Write("2.0.0", src); err != nil {
		t.Fatal(err)
	}

	res, err := Upgrade(context.Background(), root, UpgradeOptions{TemplateVersion: "2.0.0"}, WithLocator(locator))
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if res.Outcome != Applied || res.To != "2.0.0" {
		t.Fatalf("result = %+v", res)
	}
	if got := readFile(t, root, "README.md"); got != "# proj v2\n" {
		t.Errorf("README.md = %q", got)
	}
	if !slices.Contains(res.Updated, "CHANGELOG.md") {
		t.Error("new template file was not written")
	}
	if !slices.Contains(res.Orphaned, "k8s/deployment.yaml") {
		t.Errorf("orphaned = %v", res.Orphaned)
	}
}
