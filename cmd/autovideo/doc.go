// Package main hosts the autovideo CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// conversion batches, history queries, environment checks, and
// configuration scaffolding. It centralizes configuration resolution,
// logger construction, and prompt policy so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags
// here. The conversion pipeline itself lives in internal/assembly.
package main
