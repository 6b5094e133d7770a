package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUsage marks bad command-line input detected before any I/O happens.
	ErrUsage = errors.New("usage error")
	// ErrRip marks disc read or rip failures. Physical media errors are not
	// transient-safe, so rips are never retried.
	ErrRip = errors.New("rip error")
	// ErrSplit marks a non-zero exit from the external multiplexer. Partial
	// output files may remain on disk.
	ErrSplit = errors.New("split error")
	// ErrLookup marks a catalog/numbering mismatch that needs manual review.
	ErrLookup = errors.New("lookup error")
	// ErrOrganize marks a failure placing a resolved episode into the
	// library.
	ErrOrganize = errors.New("organize error")
	// ErrCleanup marks an unexpected leftover file during final cleanup.
	ErrCleanup = errors.New("cleanup error")

	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrExternalTool  = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
