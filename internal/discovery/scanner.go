package discovery

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bilimux/internal/logging"
	"bilimux/internal/m4s"
	"bilimux/internal/textutil"
)

// Scanner discovers WorkItems under Base.
type Scanner struct {
	// Base is the directory whose immediate subdirectories are items.
	Base string
	// OutputDir receives converted files. It is excluded from the scan and
	// anchors each item's OutputPath.
	OutputDir string
	// Exclude lists further directories to skip.
	Exclude []string
	// Prober classifies fragments with unrecognised names. Nil leaves them
	// unclassified.
	Prober Prober
	Logger *slog.Logger
}

type fragment struct {
	path   string
	kind   kind
	header int
}

// Items is ItemsContext with a background context.
func (s *Scanner) Items() iter.Seq2[WorkItem, error] {
	return s.ItemsContext(context.Background())
}

// ItemsContext returns the discovered items. Probing honours ctx, and the
// sequence ends early once ctx is cancelled.
func (s *Scanner) ItemsContext(ctx context.Context) iter.Seq2[WorkItem, error] {
	return func(yield func(WorkItem, error) bool) {
		logger := logging.NewComponentLogger(s.Logger, "discovery")
		entries, err := os.ReadDir(s.Base)
		if err != nil {
			yield(WorkItem{}, fmt.Errorf("%w: %w", ErrUnreadableBase, err))
			return
		}
		excluded := s.excludedPaths()
		for _, entry := range entries {
			if ctx.Err() != nil {
				return
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			dir := filepath.Join(s.Base, name)
			if !isDir(dir, entry) {
				continue
			}
			if _, skip := excluded[absPath(dir)]; skip {
				logger.Debug("skipping excluded directory", logging.String("dir", dir))
				continue
			}

			item, ok, err := s.scanDir(ctx, logger, dir)
			if err != nil {
				if !yield(WorkItem{}, err) {
					return
				}
				continue
			}
			if !ok {
				logger.Debug("no fragments found", logging.String("dir", dir))
				continue
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

func (s *Scanner) excludedPaths() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Exclude)+1)
	for _, p := range append([]string{s.OutputDir}, s.Exclude...) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out[absPath(p)] = struct{}{}
	}
	return out
}

// scanDir builds the item for one subdirectory. ok is false when the
// directory holds no fragments at all.
func (s *Scanner) scanDir(ctx context.Context, logger *slog.Logger, dir string) (WorkItem, bool, error) {
	paths, err := candidateFragments(dir)
	if err != nil {
		return WorkItem{}, false, malformed(dir, "list fragments: %v", err)
	}
	if len(paths) == 0 {
		return WorkItem{}, false, nil
	}

	var video, audio, unknown []fragment
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return WorkItem{}, false, malformed(dir, "stat %s: %v", filepath.Base(path), err)
		}
		if info.Size() == 0 {
			return WorkItem{}, false, malformed(dir, "%s is empty", filepath.Base(path))
		}
		header, err := m4s.HeaderSize(path)
		if err != nil {
			return WorkItem{}, false, malformed(dir, "%s: %v", filepath.Base(path), err)
		}
		frag := fragment{path: path, kind: classifyName(filepath.Base(path)), header: header}
		if frag.kind == kindUnknown && s.Prober != nil {
			probed, err := s.Prober.StreamKind(ctx, path, header)
			if err != nil {
				logger.Debug("probe failed", logging.String("fragment", path), logging.Error(err))
			} else {
				frag.kind = kindFromProbe(probed)
			}
		}
		switch frag.kind {
		case kindVideo:
			video = append(video, frag)
		case kindAudio:
			audio = append(audio, frag)
		default:
			unknown = append(unknown, frag)
		}
	}

	switch {
	case len(video) > 1:
		return WorkItem{}, false, malformed(dir, "%d video candidates", len(video))
	case len(audio) > 1:
		return WorkItem{}, false, malformed(dir, "%d audio candidates", len(audio))
	case len(unknown) > 0:
		return WorkItem{}, false, malformed(dir, "unclassified fragment %s", filepath.Base(unknown[0].path))
	}

	item := WorkItem{SourceDir: dir}
	if len(video) == 1 {
		item.VideoFragment = video[0].path
		item.VideoHeader = video[0].header
	}
	if len(audio) == 1 {
		item.AudioFragment = audio[0].path
		item.AudioHeader = audio[0].header
	}
	item.DisplayName, item.Group = s.names(logger, dir)
	item.OutputPath = OutputPath(s.OutputDir, item.Group, item.DisplayName, ".mp4")
	return item, true, nil
}

func (s *Scanner) names(logger *slog.Logger, dir string) (string, string) {
	fallback := textutil.SanitizeFileName(filepath.Base(dir))
	if fallback == "" {
		fallback = "item"
	}
	meta, err := readMetadata(dir)
	if err != nil {
		logger.Debug("metadata unavailable, using directory name",
			logging.String("dir", dir),
			logging.Error(err),
		)
		return fallback, ""
	}
	title := textutil.SanitizeFileName(meta.Title)
	if title == "" {
		title = fallback
	}
	group := textutil.SanitizeFileName(meta.Group)
	if group == title {
		group = ""
	}
	return title, group
}

// OutputPath places name+ext under root, inside a group folder when group
// is set.
func OutputPath(root, group, name, ext string) string {
	if group != "" {
		return filepath.Join(root, group, name+ext)
	}
	return filepath.Join(root, name+ext)
}

// candidateFragments lists .m4s files in dir and in its immediate
// non-hidden child directories.
func candidateFragments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if entry.Type().IsRegular() && m4s.IsFragment(name) {
			out = append(out, path)
			continue
		}
		if !isDir(path, entry) {
			continue
		}
		children, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if child.Type().IsRegular() && m4s.IsFragment(child.Name()) {
				out = append(out, filepath.Join(path, child.Name()))
			}
		}
	}
	return out, nil
}

func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
