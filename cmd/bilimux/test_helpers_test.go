package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bilimux/internal/testsupport"
)

type cliTestEnv struct {
	base       string
	configPath string
	ffmpeg     string
}

// setupCLITestEnv writes a config pointing at fake ffmpeg and ffprobe
// scripts and creates an empty download directory.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	root := t.TempDir()
	homeDir := filepath.Join(root, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("BILIMUX_FFMPEG", "")
	t.Setenv("BILIMUX_FFPROBE", "")

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithFakeTools()}, opts...)...)
	configPath := testsupport.WriteConfig(t, cfg, filepath.Join(root, "bilimux.toml"))

	base := filepath.Join(root, "downloads")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("mkdir base: %v", err)
	}
	return &cliTestEnv{
		base:       base,
		configPath: configPath,
		ffmpeg:     cfg.FFmpeg.Binary,
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath, "--ffmpeg", env.ffmpeg}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
}

func requireNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file at %s, got %v", path, err)
	}
}
