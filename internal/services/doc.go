// Package services holds the error taxonomy shared by the pipeline stages.
// Every failure is tagged with one of the exported sentinels so callers can
// classify it without string matching; no error kind is retried.
package services
