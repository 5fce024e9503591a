package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// FragmentSize is the payload size written for fixture fragments.
const FragmentSize = 64

// DesktopItem creates a desktop-client cache directory under base:
// <name>/<name>-1-100080.m4s (video), <name>/<name>-1-30280.m4s (audio),
// and videoInfo.json when title is non-empty. padded prefixes both
// fragments with the client's nine '0' bytes.
func DesktopItem(t testing.TB, base, name, title, group string, padded bool) string {
	t.Helper()

	dir := filepath.Join(base, name)
	WriteFragment(t, filepath.Join(dir, name+"-1-100080.m4s"), padded)
	WriteFragment(t, filepath.Join(dir, name+"-1-30280.m4s"), padded)
	if title != "" {
		WriteJSON(t, filepath.Join(dir, "videoInfo.json"), map[string]any{
			"title":      title,
			"groupTitle": group,
		})
	}
	return dir
}

// AndroidItem creates an Android cache directory under base:
// <name>/entry.json and <name>/80/{video,audio}.m4s.
func AndroidItem(t testing.TB, base, name, title, part string) string {
	t.Helper()

	dir := filepath.Join(base, name)
	WriteFragment(t, filepath.Join(dir, "80", "video.m4s"), false)
	WriteFragment(t, filepath.Join(dir, "80", "audio.m4s"), false)
	WriteJSON(t, filepath.Join(dir, "entry.json"), map[string]any{
		"title":     title,
		"page_data": map[string]any{"part": part},
	})
	return dir
}

// WriteFragment writes a non-empty fake fragment, optionally padded.
func WriteFragment(t testing.TB, path string, padded bool) {
	t.Helper()

	WriteFile(t, path, FragmentSize)
	if !padded {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	data = append([]byte("000000000"), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteJSON marshals v to path.
func WriteJSON(t testing.TB, path string, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
