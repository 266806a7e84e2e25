package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// commandNameRegex matches LaTeX control words (letters, optionally starred)
// and single-character control symbols such as \\ or \,.
var commandNameRegex = regexp.MustCompile(`^([A-Za-z@]+\*?|[^A-Za-z\s])$`)

// ValidateCommandName checks that name can follow a backslash.
func ValidateCommandName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCommand, "command name cannot be empty")
	}
	if !commandNameRegex.MatchString(name) {
		return New(ErrCodeInvalidCommand, "invalid command name: %q", name)
	}
	return nil
}

// packageNameRegex matches names accepted by \usepackage.
var packageNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidatePackageName validates a LaTeX package name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, dot, dash and underscore only
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidPackage, "package name too long (max 128 characters)")
	}
	if !packageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid package name: %q", name)
	}
	return nil
}

// ValidateJobName validates an output base name received from an untrusted
// source. It must be a plain file name without directories.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 200 characters
//   - No control characters
//   - No path separators or traversal sequences
//   - No leading dot
func ValidateJobName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "name cannot be empty")
	}

	const maxNameLength = 200
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidPath, "name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "name cannot contain path traversal sequences (..)")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "name cannot be a hidden file")
	}

	return nil
}
