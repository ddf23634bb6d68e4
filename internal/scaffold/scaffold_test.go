package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unbound-force/casegrid/internal/config"
)

// solutionDir returns a temp dir holding a .sln so no warning is printed.
func solutionDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "App.sln"), []byte("\n"), 0o644); err != nil {
		t.Fatalf("creating App.sln: %v", err)
	}
	return dir
}

func TestRun_CreatesConfig(t *testing.T) {
	dir := solutionDir(t)

	var buf bytes.Buffer
	result, err := Run(Options{
		TargetDir: dir,
		Version:   "1.2.3",
		Stdout:    &buf,
	})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if len(result.Created) != 1 || result.Created[0] != config.FileName {
		t.Errorf("Created = %v, want [%s]", result.Created, config.FileName)
	}
	if len(result.Skipped) != 0 || len(result.Overwritten) != 0 {
		t.Errorf("Skipped = %v, Overwritten = %v, want none", result.Skipped, result.Overwritten)
	}

	content, err := os.ReadFile(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatalf("reading %s: %v", config.FileName, err)
	}
	if !strings.HasPrefix(string(content), "# scaffolded by casegrid 1.2.3\n") {
		t.Errorf("file should start with version marker, got:\n%s", content)
	}

	output := buf.String()
	if !strings.Contains(output, "created:") {
		t.Errorf("summary should mention 'created:', got:\n%s", output)
	}
	if strings.Contains(output, "Warning:") {
		t.Errorf("no warning expected in a solution root, got:\n%s", output)
	}
}

func TestRun_ConfigLoads(t *testing.T) {
	dir := solutionDir(t)
	cfg := config.DefaultConfig()
	cfg.Project.Name = "BlindTreasure"
	cfg.Inputs.NamespacePrefix = "BlindTreasure.UnitTest.Services."

	if _, err := Run(Options{TargetDir: dir, Config: cfg, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	loaded, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if loaded.Project.Name != "BlindTreasure" {
		t.Errorf("Project.Name = %q, want %q", loaded.Project.Name, "BlindTreasure")
	}
	if loaded.Inputs.NamespacePrefix != cfg.Inputs.NamespacePrefix {
		t.Errorf("Inputs.NamespacePrefix = %q, want %q", loaded.Inputs.NamespacePrefix, cfg.Inputs.NamespacePrefix)
	}
}

func TestRun_Workflow(t *testing.T) {
	dir := solutionDir(t)

	result, err := Run(Options{TargetDir: dir, Workflow: true, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("Created = %v, want 2 files", result.Created)
	}

	content, err := os.ReadFile(filepath.Join(dir, WorkflowPath))
	if err != nil {
		t.Fatalf("reading workflow: %v", err)
	}
	if !strings.Contains(string(content), "casegrid/cmd/casegrid@latest generate") {
		t.Errorf("workflow should run casegrid generate, got:\n%s", content)
	}
	if !strings.HasPrefix(string(content), "# scaffolded by casegrid dev\n") {
		t.Errorf("workflow should start with dev marker, got:\n%s", content[:40])
	}
}

func TestRun_SkipsExisting(t *testing.T) {
	dir := solutionDir(t)

	if _, err := Run(Options{TargetDir: dir, Workflow: true, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("first Run() returned error: %v", err)
	}

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Workflow: true, Stdout: &buf})
	if err != nil {
		t.Fatalf("second Run() returned error: %v", err)
	}

	if len(result.Created) != 0 {
		t.Errorf("expected 0 created, got %d: %v", len(result.Created), result.Created)
	}
	if len(result.Skipped) != 2 {
		t.Errorf("expected 2 skipped, got %d: %v", len(result.Skipped), result.Skipped)
	}

	output := buf.String()
	if !strings.Contains(output, "use --force to overwrite") {
		t.Errorf("summary should suggest --force, got:\n%s", output)
	}
}

func TestRun_ForceOverwrites(t *testing.T) {
	dir := solutionDir(t)
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte("stale: true\n"), 0o644); err != nil {
		t.Fatalf("seeding config: %v", err)
	}

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Force: true, Version: "2.0.0", Stdout: &buf})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if len(result.Overwritten) != 1 {
		t.Errorf("expected 1 overwritten, got %d: %v", len(result.Overwritten), result.Overwritten)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if strings.Contains(string(content), "stale") {
		t.Errorf("config should have been replaced, got:\n%s", content)
	}
	if !strings.Contains(buf.String(), "overwritten:") {
		t.Errorf("summary should mention 'overwritten:', got:\n%s", buf.String())
	}
}

func TestRun_NoSolution_PrintsWarning(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Run(Options{TargetDir: t.TempDir(), Stdout: &buf}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "Warning: no .sln or .csproj") {
		t.Errorf("expected missing solution warning, got:\n%s", buf.String())
	}
}
