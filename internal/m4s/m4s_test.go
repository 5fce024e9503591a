package m4s

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHeaderSize(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"padded", "000000000ftypiso5", PaddingSize},
		{"exact padding", "000000000", PaddingSize},
		{"plain", "\x00\x00\x00\x18ftypiso5", 0},
		{"eight zeros", "00000000ftyp", 0},
		{"short", "000", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".m4s")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := HeaderSize(path)
			if err != nil {
				t.Fatalf("HeaderSize returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("HeaderSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeaderSizeMissingFile(t *testing.T) {
	if _, err := HeaderSize(filepath.Join(t.TempDir(), "nope.m4s")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStripRemovesPadding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "30280.m4s")
	if err := os.WriteFile(path, []byte("000000000Hello World!"), 0o640); err != nil {
		t.Fatal(err)
	}

	stripped, err := Strip(path)
	if err != nil {
		t.Fatalf("Strip returned error: %v", err)
	}
	if !stripped {
		t.Fatal("expected padding to be stripped")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello World!" {
		t.Fatalf("unexpected content %q", got)
	}

	again, err := Strip(path)
	if err != nil {
		t.Fatalf("second Strip returned error: %v", err)
	}
	if again {
		t.Fatal("expected second Strip to be a no-op")
	}
}

func TestStripRejectsOtherExtensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bin")
	if err := os.WriteFile(path, []byte("000000000data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Strip(path); err == nil {
		t.Fatal("expected error for non-m4s file")
	}
}

func TestIsFragment(t *testing.T) {
	for name, want := range map[string]bool{
		"video.m4s":  true,
		"AUDIO.M4S":  true,
		"entry.json": false,
		"m4s":        false,
	} {
		if got := IsFragment(name); got != want {
			t.Errorf("IsFragment(%q) = %v, want %v", name, got, want)
		}
	}
}
