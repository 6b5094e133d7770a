// Package logging builds the slog loggers used across the ripper: a console
// handler for interactive runs and a JSON handler for log files, plus the
// attribute helpers that keep field names consistent.
package logging
