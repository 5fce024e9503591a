package ffmpeg

import (
	"slices"
	"testing"
)

func TestMuxArgs(t *testing.T) {
	got := MuxArgs(MuxRequest{
		Video:     "/in/video.m4s",
		Audio:     "/in/audio.m4s",
		Output:    "/out/Title.mp4",
		Overwrite: true,
	})
	want := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-i", "/in/video.m4s",
		"-i", "/in/audio.m4s",
		"-map", "0:v:0", "-map", "1:a:0",
		"-c", "copy", "-movflags", "+faststart",
		"/out/Title.mp4",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("MuxArgs mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestMuxArgsSkipsPaddingPerInput(t *testing.T) {
	got := MuxArgs(MuxRequest{
		Video:     "v.m4s",
		VideoSkip: 9,
		Audio:     "a.m4s",
		Output:    "o.mp4",
	})
	want := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-n",
		"-skip_initial_bytes", "9", "-i", "v.m4s",
		"-i", "a.m4s",
		"-map", "0:v:0", "-map", "1:a:0",
		"-c", "copy", "-movflags", "+faststart",
		"o.mp4",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("MuxArgs mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestAudioArgsByFormat(t *testing.T) {
	tests := []struct {
		format string
		codec  []string
	}{
		{FormatAuto, []string{"-c:a", "copy"}},
		{FormatM4A, []string{"-c:a", "copy"}},
		{FormatMP3, []string{"-c:a", "libmp3lame", "-q:a", "2"}},
		{FormatFLAC, []string{"-c:a", "flac"}},
		{"", []string{"-c:a", "copy"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := AudioArgs(AudioRequest{
				Input:     "a.m4s",
				InputSkip: 9,
				Output:    "out",
				Format:    tt.format,
				Overwrite: true,
			})
			want := []string{"-hide_banner", "-nostdin", "-loglevel", "error", "-y", "-skip_initial_bytes", "9", "-i", "a.m4s", "-vn"}
			want = append(want, tt.codec...)
			want = append(want, "out")
			if !slices.Equal(got, want) {
				t.Fatalf("AudioArgs mismatch\n got: %v\nwant: %v", got, want)
			}
		})
	}
}
