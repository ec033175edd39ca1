package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfigTOML isolates a run under a temp data_dir.
func writeConfigTOML(t *testing.T, dir string) string {
	t.Helper()
	cfg := filepath.Join(dir, "config.toml")
	content := `data_dir = "` + strings.ReplaceAll(dir, "\\", "\\\\") + `"
[dozuki]
base_url = "https://example.dozuki.com"
site_id = "example"
`
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfg
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLIStatusEmptyStore(t *testing.T) {
	cfg := writeConfigTOML(t, t.TempDir())

	out, err := runCLI(t, "--config", cfg, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "documents: 0") {
		t.Errorf("expected empty store, got:\n%s", out)
	}
	if !strings.Contains(out, "site:      example") {
		t.Errorf("expected configured site id, got:\n%s", out)
	}
	if !strings.Contains(out, "not logged in") {
		t.Errorf("expected no stored token, got:\n%s", out)
	}
}

func TestCLIAskEmptyStore(t *testing.T) {
	cfg := writeConfigTOML(t, t.TempDir())

	out, err := runCLI(t, "--config", cfg, "ask", "-o", "plain", "how do I replace the blade?")
	if err != nil {
		t.Fatalf("ask: %v\n%s", err, out)
	}
	if !strings.Contains(out, "could not find anything") {
		t.Errorf("expected extractive fallback answer, got:\n%s", out)
	}
}

func TestCLIConfigShow(t *testing.T) {
	cfg := writeConfigTOML(t, t.TempDir())

	out, err := runCLI(t, "--config", cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v\n%s", err, out)
	}
	for _, key := range []string{"data_dir", "dozuki.base_url", "query.top_k", "http_addr"} {
		if !strings.Contains(out, key+" = ") {
			t.Errorf("config show missing %s:\n%s", key, out)
		}
	}
	if !strings.Contains(out, "dozuki.base_url = https://example.dozuki.com") {
		t.Errorf("file value not resolved:\n%s", out)
	}
}

func TestCLIConfigGenerate(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfigTOML(t, dir)
	out := filepath.Join(dir, "generated.toml")

	if _, err := runCLI(t, "--config", cfg, "config", "generate", "-o", out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read generated: %v", err)
	}
	if !strings.Contains(string(data), "[dozuki]") || !strings.Contains(string(data), "top_k = 5") {
		t.Errorf("generated config incomplete:\n%s", data)
	}

	if _, err := runCLI(t, "--config", cfg, "config", "generate", "-o", out); err == nil {
		t.Fatal("expected error on existing file without --overwrite")
	}
}

func TestCLIIngestClearNeedsConfirmation(t *testing.T) {
	cfg := writeConfigTOML(t, t.TempDir())

	if _, err := runCLI(t, "--config", cfg, "ingest", "clear"); err == nil {
		t.Fatal("expected refusal without --yes")
	}
	out, err := runCLI(t, "--config", cfg, "ingest", "clear", "--yes")
	if err != nil {
		t.Fatalf("clear: %v\n%s", err, out)
	}
	if !strings.Contains(out, "cleared") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestCLIIngestGuideBadID(t *testing.T) {
	cfg := writeConfigTOML(t, t.TempDir())

	if _, err := runCLI(t, "--config", cfg, "ingest", "guide", "zero"); err == nil {
		t.Fatal("expected error for non-numeric guide id")
	}
}
