// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Prober: classifies a fragment as audio or video by its first stream
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Bilibili desktop fragments start with a run of ASCII '0' bytes that
// ffprobe cannot parse; callers pass the header length so the probe can
// skip it.
package ffprobe
