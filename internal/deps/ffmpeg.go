package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFprobe returns the ffprobe executable to use alongside ffmpegCommand.
//
// Static ffmpeg builds ship ffprobe in the same directory, and users who
// point bilimux at such a build rarely have ffprobe on PATH. When the
// configured ffprobe is the bare default name, a sibling of the resolved
// ffmpeg binary wins over PATH lookup.
func ResolveFFprobe(ffmpegCommand, ffprobeCommand string) string {
	ffprobeCommand = strings.TrimSpace(ffprobeCommand)
	if ffprobeCommand == "" {
		ffprobeCommand = "ffprobe"
	}
	if ffprobeCommand != "ffprobe" {
		return ffprobeCommand
	}

	ffmpegCommand = strings.TrimSpace(ffmpegCommand)
	if ffmpegCommand == "" {
		return ffprobeCommand
	}
	resolved, err := exec.LookPath(ffmpegCommand)
	if err != nil {
		return ffprobeCommand
	}
	candidate := siblingCandidate(resolved, "ffprobe")
	if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
		return candidate
	}
	return ffprobeCommand
}

func siblingCandidate(binaryPath, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(binaryPath), name)
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
