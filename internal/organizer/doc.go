// Package organizer translates absolute episode numbers into the default
// season/episode numbering, builds library file names, and relocates split
// episode files into per-season directories.
package organizer
