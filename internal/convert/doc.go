// Package convert turns discovered WorkItems into output files by running
// ffmpeg, and aggregates per-item outcomes into a run Summary.
//
// Converter handles one item: the mux step and/or the audio extraction step
// selected by Options. Run drives a discovery sequence through a converter
// one item at a time. Per-item failures are recorded and processing moves
// on; only environment problems (ErrFilesystem, an unreadable base
// directory, cancellation) end the run early.
package convert
