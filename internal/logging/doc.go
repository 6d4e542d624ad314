// Package logging builds slog loggers for the CLI.
//
// Two output formats are supported: a compact console format for humans
// (timestamp, level, component, message, key=value attrs) and standard JSON
// for machine consumption. Output can fan out to stdout/stderr and a log
// file under the configured log directory.
package logging
