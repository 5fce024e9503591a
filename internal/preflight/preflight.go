package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bilimux/internal/config"
	"bilimux/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// Targets names the directories a run reads from and writes to.
type Targets struct {
	BaseDir   string
	OutputDir string
	AudioDir  string
}

// RunAll executes all applicable preflight checks. Output directories that
// do not exist yet are checked through their nearest existing ancestor,
// since the converter creates them on demand.
func RunAll(cfg *config.Config, targets Targets) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if strings.TrimSpace(targets.BaseDir) != "" {
		results = append(results, CheckReadableDir("Base directory", targets.BaseDir))
	}
	if strings.TrimSpace(targets.OutputDir) != "" {
		results = append(results, CheckCreatableDir("Output directory", targets.OutputDir))
	}
	if audio := strings.TrimSpace(targets.AudioDir); audio != "" && audio != targets.OutputDir {
		results = append(results, CheckCreatableDir("Audio directory", audio))
	}
	for _, status := range CheckSystemDeps(cfg) {
		detail := status.Command
		if !status.Available {
			detail = status.Detail
		}
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Optional: status.Optional,
			Detail:   detail,
		})
	}
	return results
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err folds failed required checks into a single error, or nil.
func Err(results []Result) error {
	failed := Failed(results)
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, r := range failed {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
}

// CheckSystemDeps evaluates the external executables for the given config.
// ffprobe is optional: discovery only needs it for fragments whose names do
// not follow a known client layout.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for muxing and audio extraction",
		},
	}
	if cfg.FFmpeg.ProbeUnknown {
		requirements = append(requirements, deps.Requirement{
			Name:        "FFprobe",
			Command:     deps.ResolveFFprobe(cfg.FFmpegBinary(), cfg.FFprobeBinary()),
			Description: "Classifies fragments with non-standard names",
			Optional:    true,
		})
	}
	return deps.CheckBinaries(requirements)
}

// CheckReadableDir verifies that the directory exists and can be listed.
func CheckReadableDir(name, path string) Result {
	if result, ok := statDir(name, path); !ok {
		return result
	}
	if err := access(path, accessRead|accessExec); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if result, ok := statDir(name, path); !ok {
		return result
	}
	if err := access(path, accessRead|accessWrite|accessExec); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCreatableDir passes when path is a writable directory, or when it
// does not exist yet and its nearest existing ancestor is writable.
func CheckCreatableDir(name, path string) Result {
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	ancestor := filepath.Dir(filepath.Clean(path))
	for {
		if _, err := os.Stat(ancestor); err == nil {
			break
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
	}
	result := CheckDirectoryAccess(name, ancestor)
	if !result.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s)", path, ancestor)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

func statDir(name, path string) (Result, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}, false
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}, false
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}, false
	}
	return Result{}, true
}
