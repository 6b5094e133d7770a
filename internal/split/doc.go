// Package split turns one multi-episode container into per-episode files:
// the credits-duration heuristic supplies chapter markers when the disc has
// no segment map, and the splitter drives mkvmerge with a typed job spec.
package split
