package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	desktopInfoFile = "videoInfo.json"
	androidInfoFile = "entry.json"
)

type videoInfo struct {
	Title      string `json:"title"`
	GroupTitle string `json:"groupTitle"`
}

type entryInfo struct {
	Title    string `json:"title"`
	PageData struct {
		Part string `json:"part"`
	} `json:"page_data"`
}

type metadata struct {
	Title string
	Group string
}

// readMetadata loads the sidecar title of an item directory. A missing
// sidecar returns a zero metadata and no error.
func readMetadata(dir string) (metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, desktopInfoFile))
	if err == nil {
		var info videoInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return metadata{}, fmt.Errorf("parse %s: %w", desktopInfoFile, err)
		}
		return normalizeMetadata(info.Title, info.GroupTitle), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return metadata{}, fmt.Errorf("read %s: %w", desktopInfoFile, err)
	}

	data, err = os.ReadFile(filepath.Join(dir, androidInfoFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return metadata{}, nil
		}
		return metadata{}, fmt.Errorf("read %s: %w", androidInfoFile, err)
	}
	var entry entryInfo
	if err := json.Unmarshal(data, &entry); err != nil {
		return metadata{}, fmt.Errorf("parse %s: %w", androidInfoFile, err)
	}
	part := strings.TrimSpace(entry.PageData.Part)
	if part == "" {
		return normalizeMetadata(entry.Title, ""), nil
	}
	// Multi-part uploads: the upload title groups the parts.
	return normalizeMetadata(part, entry.Title), nil
}

// normalizeMetadata drops a group that repeats the title.
func normalizeMetadata(title, group string) metadata {
	title = strings.TrimSpace(title)
	group = strings.TrimSpace(group)
	if group == title {
		group = ""
	}
	return metadata{Title: title, Group: group}
}
