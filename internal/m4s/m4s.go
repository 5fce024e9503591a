// Package m4s inspects Bilibili .m4s fragments.
//
// The desktop client prefixes cached fragments with nine ASCII '0' bytes,
// which makes the file unreadable as fragmented MP4 until the prefix is
// skipped. HeaderSize detects the prefix; Strip removes it in place.
package m4s

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bilimux/internal/fileutil"
)

// Ext is the fragment file extension used by every Bilibili client.
const Ext = ".m4s"

// PaddingSize is the length of the desktop client prefix.
const PaddingSize = 9

var padding = bytes.Repeat([]byte{'0'}, PaddingSize)

// IsFragment reports whether name carries the .m4s extension.
func IsFragment(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Ext)
}

// HeaderSize returns PaddingSize when the file at path starts with the
// client padding prefix and 0 otherwise. Files shorter than the prefix
// report 0.
func HeaderSize(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, PaddingSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("read fragment header: %w", err)
	}
	if bytes.Equal(buf, padding) {
		return PaddingSize, nil
	}
	return 0, nil
}

// Strip removes the padding prefix from the fragment at path, replacing the
// file atomically. It reports whether anything was removed.
func Strip(path string) (bool, error) {
	if !IsFragment(path) {
		return false, fmt.Errorf("strip %s: not an %s fragment", path, Ext)
	}
	size, err := HeaderSize(path)
	if err != nil {
		return false, err
	}
	if size == 0 {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := f.Seek(int64(size), io.SeekStart); err != nil {
		return false, fmt.Errorf("seek past header: %w", err)
	}
	if err := fileutil.WriteAtomic(path, f, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("strip %s: %w", path, err)
	}
	return true, nil
}
