package convert_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"testing"

	"bilimux/internal/convert"
	"bilimux/internal/discovery"
)

type stubConverter struct {
	convert func(item discovery.WorkItem) convert.Outcome
	seen    []string
}

func (s *stubConverter) Convert(_ context.Context, item discovery.WorkItem) convert.Outcome {
	s.seen = append(s.seen, item.DisplayName)
	if s.convert != nil {
		return s.convert(item)
	}
	return convert.Outcome{Item: item, Status: convert.StatusConverted}
}

type entry struct {
	item discovery.WorkItem
	err  error
}

func sequence(entries ...entry) iter.Seq2[discovery.WorkItem, error] {
	return func(yield func(discovery.WorkItem, error) bool) {
		for _, e := range entries {
			if !yield(e.item, e.err) {
				return
			}
		}
	}
}

func named(name string) entry {
	return entry{item: discovery.WorkItem{DisplayName: name}}
}

func TestRunCountsWarnings(t *testing.T) {
	malformed := &discovery.ItemError{Dir: "/x", Err: fmt.Errorf("%w: 2 video candidates", discovery.ErrMalformedFragment)}
	var warnings []error
	observer := convert.Observer{Warning: func(err error) { warnings = append(warnings, err) }}

	conv := &stubConverter{}
	summary, err := convert.Run(context.Background(), sequence(named("a"), entry{err: malformed}, named("b")), conv, observer, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Warnings != 1 || summary.Converted != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], discovery.ErrMalformedFragment) {
		t.Fatalf("expected malformed warning, got %v", warnings)
	}
}

func TestRunStopsOnUnreadableBase(t *testing.T) {
	conv := &stubConverter{}
	base := fmt.Errorf("%w: permission denied", discovery.ErrUnreadableBase)
	_, err := convert.Run(context.Background(), sequence(entry{err: base}, named("never")), conv, convert.Observer{}, nil)
	if !errors.Is(err, discovery.ErrUnreadableBase) {
		t.Fatalf("expected ErrUnreadableBase, got %v", err)
	}
	if len(conv.seen) != 0 {
		t.Fatalf("expected no conversions, got %v", conv.seen)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	conv := &stubConverter{convert: func(item discovery.WorkItem) convert.Outcome {
		cancel()
		return convert.Outcome{Item: item, Status: convert.StatusFailed, Err: context.Canceled}
	}}

	summary, err := convert.Run(ctx, sequence(named("a"), named("b")), conv, convert.Observer{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(conv.seen) != 1 || summary.Failed != 1 {
		t.Fatalf("expected processing to stop after first item, seen %v summary %+v", conv.seen, summary)
	}
}

func TestRunTalliesStatuses(t *testing.T) {
	statuses := map[string]convert.Status{
		"ok":   convert.StatusConverted,
		"bad":  convert.StatusFailed,
		"skip": convert.StatusSkipped,
	}
	conv := &stubConverter{convert: func(item discovery.WorkItem) convert.Outcome {
		return convert.Outcome{Item: item, Status: statuses[item.DisplayName]}
	}}

	summary, err := convert.Run(context.Background(), sequence(named("ok"), named("bad"), named("skip")), conv, convert.Observer{}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Converted != 1 || summary.Failed != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.OK() {
		t.Fatal("summary with a failure must not be OK")
	}
}

func TestAudioExtension(t *testing.T) {
	tests := []struct {
		format, codec, want string
	}{
		{"m4a", "flac", ".m4a"},
		{"mp3", "aac", ".mp3"},
		{"flac", "aac", ".flac"},
		{"", "", ".m4a"},
		{"auto", "aac", ".m4a"},
		{"auto", "", ".m4a"},
		{"auto", "flac", ".flac"},
		{"auto", "EAC3", ".eac3"},
	}
	for _, tt := range tests {
		opts := convert.Options{AudioFormat: tt.format}
		if got := opts.AudioExtension(tt.codec); got != tt.want {
			t.Errorf("AudioExtension(%q) with codec %q = %q, want %q", tt.format, tt.codec, got, tt.want)
		}
	}
}
