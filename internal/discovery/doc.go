// Package discovery walks a Bilibili download directory and pairs the audio
// and video fragments of each cached item into WorkItems.
//
// Scanner.Items returns a lazy, restartable iter.Seq2: every range over it
// re-reads the base directory, and nothing is cached between runs. Items are
// yielded in the order os.ReadDir returns them (sorted by name).
//
// Two client layouts are recognised:
//   - desktop: <item>/<id>-<n>-<code>.m4s with videoInfo.json metadata
//   - Android: <item>/<quality>/{video,audio}.m4s with entry.json metadata
//
// Per-item problems are yielded as errors wrapping ErrMalformedFragment and
// the scan continues. Only an unreadable base directory ends the sequence
// with ErrUnreadableBase.
package discovery
