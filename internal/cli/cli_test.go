package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"render", "convert", "cache", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root should carry a --config flag")
	}
}

func TestVersionCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version error: %v", err)
	}
	if !strings.Contains(buf.String(), "version: dev") {
		t.Errorf("version output = %q", buf.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})

	if err := root.Execute(); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(buf.String(), appName) {
		t.Error("bash completion should mention the program name")
	}
}

func TestCacheInfoCommand(t *testing.T) {
	out, _ := sandbox(t)
	path := writeConfig(t, "[cache]\nbackend = \"memory\"\nnamespace = \"team\"\nttl = \"2h\"\n")

	if err := execute(t, "--config", path, "cache", "info"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"memory", "team", "2h0m0s"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("cache info output missing %q: %q", want, out.String())
		}
	}
}

func TestCacheClearNonFileBackend(t *testing.T) {
	out, _ := sandbox(t)
	path := writeConfig(t, "[cache]\nbackend = \"none\"\n")

	if err := execute(t, "--config", path, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Nothing to clear") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCachePathCommand(t *testing.T) {
	out, _ := sandbox(t)
	if err := execute(t, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	dir, _ := cacheDir()
	if strings.TrimSpace(out.String()) != dir {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}
}

func TestCacheClearKeepsForeignFiles(t *testing.T) {
	out, _ := sandbox(t)
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	source := filepath.Join(dir, "src", "main.go")
	if err := os.MkdirAll(filepath.Dir(source), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{notes, source} {
		if err := os.WriteFile(p, []byte("keep"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	path := writeConfig(t, "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")
	output := filepath.Join(t.TempDir(), "code.png")
	if err := execute(t, "--config", path, "render", "hello", "-f", "png", "-o", output); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "--config", path, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared") {
		t.Errorf("expected cached renders to be cleared, got %q", out.String())
	}
	for _, p := range []string{notes, source} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("cache clear removed unrelated file %s", p)
		}
	}
}
