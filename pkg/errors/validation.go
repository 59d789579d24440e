package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds lifeline and activity-bar identifiers.
const maxIDLength = 256

// ValidateID validates a lifeline or activity-bar identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No surrounding whitespace
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "identifier cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "identifier too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "identifier %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidID, "identifier %q has surrounding whitespace", id)
	}

	return nil
}

// sceneExtRegex matches the fixture formats understood by the scene loader.
var sceneExtRegex = regexp.MustCompile(`^\.(ya?ml|toml|json)$`)

// ValidateSceneFilename validates that a fixture filename has a supported
// extension.
func ValidateSceneFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "scene filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !sceneExtRegex.MatchString(ext) {
		return New(ErrCodeInvalidFormat, "unsupported scene format %q (want .yaml, .yml, .toml or .json)", ext)
	}

	return nil
}
