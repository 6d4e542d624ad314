package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataDir    string
	distDir    string
	mediaDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		dataDir:    filepath.Join(base, "data"),
		distDir:    filepath.Join(base, "dist"),
		mediaDir:   filepath.Join(base, "media"),
	}
	if err := os.MkdirAll(env.mediaDir, 0o755); err != nil {
		t.Fatalf("create media dir: %v", err)
	}

	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[export]
open = false

[dist]
output_dir = %q

[logging]
level = "error"
`, env.dataDir, filepath.Join(base, "logs"), env.distDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got %q", needle, haystack)
	}
}

func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("video payload"), 0o644); err != nil {
		t.Fatalf("write video %s: %v", name, err)
	}
	return path
}

func TestCLIAddListRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	clip := writeVideo(t, env.mediaDir, "sunset.mp4")

	out, _, err := runCLI(t, env.configPath, "add", clip, "--tags", "nature, sunset", "--desc", "evening shot")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Cataloged #1")
	requireContains(t, out, "#nature #sunset")

	// Re-adding the same path is rejected.
	if _, _, err := runCLI(t, env.configPath, "add", clip); err == nil {
		t.Fatal("expected duplicate add to fail")
	}

	out, _, err = runCLI(t, env.configPath, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "sunset.mp4")
	requireContains(t, out, "1 record(s)")

	out, _, err = runCLI(t, env.configPath, "list", "--tag", "nature", "--tag", "sunset")
	if err != nil {
		t.Fatalf("list --tag: %v", err)
	}
	requireContains(t, out, "sunset.mp4")

	out, _, err = runCLI(t, env.configPath, "list", "--tag", "city")
	if err != nil {
		t.Fatalf("list --tag city: %v", err)
	}
	requireContains(t, out, "No matching records")

	out, _, err = runCLI(t, env.configPath, "remove", "1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, "Removed 1 record(s)")

	out, _, err = runCLI(t, env.configPath, "list")
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	requireContains(t, out, "No matching records")
}

func TestCLIAddOfflinePathFlaggedMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	offline := filepath.Join(env.mediaDir, "not-copied-yet.mp4")

	out, _, err := runCLI(t, env.configPath, "add", offline)
	if err != nil {
		t.Fatalf("add offline path: %v", err)
	}
	requireContains(t, out, "flagged missing")

	out, _, err = runCLI(t, env.configPath, "list", "--missing")
	if err != nil {
		t.Fatalf("list --missing: %v", err)
	}
	requireContains(t, out, "not-copied-yet.mp4")
}

func TestCLIAddRejectsUnknownExtension(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := writeVideo(t, env.mediaDir, "notes.txt")

	if _, _, err := runCLI(t, env.configPath, "add", doc); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func TestCLIImportScansDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	writeVideo(t, env.mediaDir, "a.mp4")
	writeVideo(t, env.mediaDir, "b.mkv")
	writeVideo(t, env.mediaDir, "skip.txt")
	nested := filepath.Join(env.mediaDir, "nested")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	writeVideo(t, nested, "c.mov")

	out, _, err := runCLI(t, env.configPath, "import", env.mediaDir, "--tags", "batch", "--desc", "stock footage")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Imported 3 file(s), skipped 0")

	// A second run skips everything already cataloged.
	out, _, err = runCLI(t, env.configPath, "import", env.mediaDir)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	requireContains(t, out, "Imported 0 file(s), skipped 3")
}

func TestCLIExportWritesEFU(t *testing.T) {
	env := setupCLITestEnv(t)
	clip := writeVideo(t, env.mediaDir, "river.mp4")

	if _, _, err := runCLI(t, env.configPath, "add", clip, "--tags", "water"); err != nil {
		t.Fatalf("add: %v", err)
	}

	target := filepath.Join(env.baseDir, "out.efu")
	out, _, err := runCLI(t, env.configPath, "export", "--tag", "water", "--out", target, "--no-open", "--check")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 1 path(s)")
	requireContains(t, out, "Check passed")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read efu: %v", err)
	}
	requireContains(t, string(data), "Filename,Size,Date Modified,Date Created,Attributes")
	requireContains(t, string(data), `"`+clip+`"`)

	// A selection with no matches must fail before touching the file.
	if _, _, err := runCLI(t, env.configPath, "export", "--tag", "fire", "--out", target, "--no-open"); err == nil {
		t.Fatal("expected export of empty selection to fail")
	}
}

func TestCLIJSONRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	clip := writeVideo(t, env.mediaDir, "dunes.mp4")

	if _, _, err := runCLI(t, env.configPath, "add", clip, "--tags", "desert", "--desc", "dune ridge"); err != nil {
		t.Fatalf("add: %v", err)
	}

	exportPath := filepath.Join(env.baseDir, "data.json")
	out, _, err := runCLI(t, env.configPath, "export-json", "--out", exportPath)
	if err != nil {
		t.Fatalf("export-json: %v", err)
	}
	requireContains(t, out, "Exported 1 record(s)")

	if _, _, err := runCLI(t, env.configPath, "clear", "--yes"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	out, _, err = runCLI(t, env.configPath, "import-json", exportPath)
	if err != nil {
		t.Fatalf("import-json: %v", err)
	}
	requireContains(t, out, "Imported 1 record(s), skipped 0")

	out, _, err = runCLI(t, env.configPath, "list", "--tag", "desert")
	if err != nil {
		t.Fatalf("list after round trip: %v", err)
	}
	requireContains(t, out, "dunes.mp4")
}

func TestCLIClearNeedsConfirmation(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env.configPath, "clear"); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
}

func TestCLIVerifyReportsMissing(t *testing.T) {
	env := setupCLITestEnv(t)
	clip := writeVideo(t, env.mediaDir, "gone.mp4")
	if _, _, err := runCLI(t, env.configPath, "add", clip); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := os.Remove(clip); err != nil {
		t.Fatalf("remove clip: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "verify")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	requireContains(t, out, "1 missing, 1 updated")

	out, _, err = runCLI(t, env.configPath, "list", "--missing")
	if err != nil {
		t.Fatalf("list --missing: %v", err)
	}
	requireContains(t, out, "gone.mp4")
}

func TestCLITagsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	clip := writeVideo(t, env.mediaDir, "clip.mp4")
	other := writeVideo(t, env.mediaDir, "other.mp4")

	if _, _, err := runCLI(t, env.configPath, "add", clip, "--tags", "city night"); err != nil {
		t.Fatalf("add clip: %v", err)
	}
	if _, _, err := runCLI(t, env.configPath, "add", other, "--tags", "night"); err != nil {
		t.Fatalf("add other: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "tags")
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	requireContains(t, out, "city")
	requireContains(t, out, "night")
}

func TestCLIStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Records: 0")
	requireContains(t, out, "Packager")
	requireContains(t, out, "Everything")
}
