package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bilimux/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckReadableDir_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckReadableDir("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDir_MissingUnderWritableParent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "nested")
	result := CheckCreatableDir("Output directory", target)
	if !result.Passed {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestRunAllReportsMissingFFmpeg(t *testing.T) {
	base := t.TempDir()
	cfg := testsupport.NewConfig(t, testsupport.WithMissingBinaries())
	cfg.FFmpeg.ProbeUnknown = true

	results := RunAll(cfg, Targets{
		BaseDir:   base,
		OutputDir: filepath.Join(base, "bili_video_output"),
		AudioDir:  filepath.Join(base, "audio"),
	})
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %#v", len(results), results)
	}

	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "FFmpeg" {
		t.Fatalf("expected only ffmpeg to fail as required, got %#v", failed)
	}
	err := Err(results)
	if err == nil || !strings.Contains(err.Error(), "FFmpeg") {
		t.Fatalf("expected preflight error naming ffmpeg, got %v", err)
	}
}

func TestRunAllSkipsProbeWhenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 1 || statuses[0].Name != "FFmpeg" {
		t.Fatalf("expected only ffmpeg requirement, got %#v", statuses)
	}
}
