// Package textutil provides filename sanitization for titles read from
// Bilibili download metadata.
//
// Titles arrive as arbitrary Unicode (full-width punctuation, emoji, path
// separators) and must become a single safe path segment on every platform
// the output tree might be copied to.
package textutil
