package paths

import (
	"strings"

	"github.com/arthur-debert/hostgen/pkg/errors"
)

// ValidateName ensures a name is safe to use as a single path component.
// Import names, backend names and hook names must:
// - Not be empty
// - Not contain path separators
// - Not contain special characters that could cause issues
// - Not be reserved names (. or ..)
func ValidateName(kind, name string) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s cannot be empty", kind)
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "%s %q cannot contain path separators", kind, name)
	}

	if name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "%s cannot be '.' or '..'", kind)
	}

	invalidChars := ":*?\"<>| \t"
	if strings.ContainsAny(name, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"%s %q contains invalid characters", kind, name)
	}

	for _, r := range name {
		if r < 32 || r == 127 {
			return errors.Newf(errors.ErrInvalidInput,
				"%s %q contains control characters", kind, name)
		}
	}

	return nil
}
