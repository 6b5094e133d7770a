// Package tvdb is a minimal TheTVDB v4 API client covering what episode
// resolution needs: login and the paginated series episode listings in both
// the default and absolute numbering views.
package tvdb
