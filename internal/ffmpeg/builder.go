package ffmpeg

import "strconv"

// Audio formats accepted by AudioArgs.
const (
	FormatAuto = "auto"
	FormatM4A  = "m4a"
	FormatMP3  = "mp3"
	FormatFLAC = "flac"
)

// MuxRequest describes a video+audio stream-copy into an MP4 container.
type MuxRequest struct {
	Video     string
	VideoSkip int
	Audio     string
	AudioSkip int
	Output    string
	Overwrite bool
}

// AudioRequest describes an audio-only extraction.
type AudioRequest struct {
	Input     string
	InputSkip int
	Output    string
	Format    string
	Overwrite bool
}

// MuxArgs returns the ffmpeg arguments (without the binary) for req.
func MuxArgs(req MuxRequest) []string {
	args := preamble(req.Overwrite)
	args = appendInput(args, req.Video, req.VideoSkip)
	args = appendInput(args, req.Audio, req.AudioSkip)
	args = append(args,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c", "copy",
		"-movflags", "+faststart",
		req.Output,
	)
	return args
}

// AudioArgs returns the ffmpeg arguments (without the binary) for req.
// FormatAuto, FormatM4A and unknown formats stream-copy; the container
// follows the output extension.
func AudioArgs(req AudioRequest) []string {
	args := preamble(req.Overwrite)
	args = appendInput(args, req.Input, req.InputSkip)
	args = append(args, "-vn")
	switch req.Format {
	case FormatMP3:
		args = append(args, "-c:a", "libmp3lame", "-q:a", "2")
	case FormatFLAC:
		args = append(args, "-c:a", "flac")
	default:
		args = append(args, "-c:a", "copy")
	}
	return append(args, req.Output)
}

func preamble(overwrite bool) []string {
	args := []string{"-hide_banner", "-nostdin", "-loglevel", "error"}
	if overwrite {
		return append(args, "-y")
	}
	return append(args, "-n")
}

func appendInput(args []string, path string, skip int) []string {
	if skip > 0 {
		args = append(args, "-skip_initial_bytes", strconv.Itoa(skip))
	}
	return append(args, "-i", path)
}
