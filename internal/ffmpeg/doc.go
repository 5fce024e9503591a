// Package ffmpeg builds and runs the ffmpeg invocations bilimux needs:
// stream-copy muxing of a video and an audio fragment into MP4, and
// audio-only extraction.
//
// Argument construction (builder.go) is pure and tested in isolation.
// Runner executes a prepared argument list, captures stderr, and converts a
// non-zero exit into *ExitError.
package ffmpeg
