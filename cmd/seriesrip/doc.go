// Command seriesrip rips a disc of contiguous episodes, splits the rip at
// episode boundaries, and files the results into a season-structured
// library with names resolved from TheTVDB.
package main
