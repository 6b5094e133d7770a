// Package preflight verifies the host environment before a rip starts:
// external binaries, the optical drive, staging free space, and catalog
// credentials.
package preflight
