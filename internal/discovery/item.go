package discovery

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFragment marks an operation that needs a fragment the item lacks.
	ErrMissingFragment = errors.New("missing fragment")
	// ErrMalformedFragment marks an item whose fragments cannot be paired unambiguously.
	ErrMalformedFragment = errors.New("malformed fragment")
	// ErrUnreadableBase marks a base directory that cannot be listed.
	ErrUnreadableBase = errors.New("unreadable base directory")
)

// WorkItem is one cached download ready for conversion.
type WorkItem struct {
	SourceDir     string
	AudioFragment string
	VideoFragment string
	DisplayName   string
	Group         string
	OutputPath    string
	AudioHeader   int
	VideoHeader   int
}

// CanMux reports whether both fragments are present.
func (w WorkItem) CanMux() bool {
	return w.VideoFragment != "" && w.AudioFragment != ""
}

// CanExtractAudio reports whether the audio fragment is present.
func (w WorkItem) CanExtractAudio() bool {
	return w.AudioFragment != ""
}

// ItemError ties a per-item discovery failure to its directory.
type ItemError struct {
	Dir string
	Err error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %v", e.Dir, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

func malformed(dir, format string, args ...any) error {
	return &ItemError{Dir: dir, Err: fmt.Errorf("%w: %s", ErrMalformedFragment, fmt.Sprintf(format, args...))}
}
