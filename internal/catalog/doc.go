// Package catalog caches TVDB episode listings in SQLite. A full series
// listing runs to a thousand-plus records fetched a page at a time; box
// sets are processed disc by disc, so the cache saves a refetch per disc.
package catalog
