// Package disc reads MakeMKV disc metadata: title enumeration with sizes and
// segment maps, selection of the episode-bearing title, split-marker
// extraction, and drive release (unmount + eject). The segment map is the
// primary source of episode boundaries; when a disc ships without one the
// split package's credits heuristic takes over.
package disc
