// Package main hosts the bilimux CLI entrypoint and command graph.
//
// The root command converts a Bilibili download directory: it discovers
// items, runs ffmpeg for each one, and prints a summary table. Subcommands
// cover the read-only and maintenance paths (scan, check, repair) and
// configuration scaffolding.
//
// Keep this package thin. Discovery, conversion, and dependency checks live
// in internal packages; commands here only resolve configuration, wire the
// pieces together, and render results.
package main
