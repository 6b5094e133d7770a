// Package pipeline orchestrates one disc end to end: scan the drive, select
// the largest title, derive chapter markers, rip, split, and file the
// resulting episodes into the library.
package pipeline
