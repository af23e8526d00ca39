package errors

import (
	"strings"
	"unicode"
)

// MinGon is the smallest side count a polyhedron face can have.
const MinGon = 3

// ValidatePath validates a user-supplied file path for safety.
// It rejects empty or oversized paths and paths carrying control characters.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateGon checks that a face side count is usable.
func ValidateGon(gon int) error {
	if gon < MinGon {
		return New(ErrCodeMalformedInput, "face must have at least %d sides, got %d", MinGon, gon)
	}
	return nil
}

// ValidateSequence checks the structural shape of a connectivity sequence:
// odd length, gon entries of at least MinGon, a zero root offset, and interior
// offsets in [1, gon). It does not check that the sequence is realizable on
// any particular polyhedron.
func ValidateSequence(seq []int) error {
	if len(seq) == 0 {
		return New(ErrCodeInvalidSequence, "sequence is empty")
	}
	if len(seq)%2 == 0 {
		return New(ErrCodeInvalidSequence, "sequence length must be odd, got %d", len(seq))
	}
	for i := 0; i < len(seq); i += 2 {
		if seq[i] < MinGon {
			return New(ErrCodeInvalidSequence, "gon at position %d must be at least %d, got %d", i, MinGon, seq[i])
		}
	}
	if len(seq) > 1 && seq[1] != 0 {
		return New(ErrCodeInvalidSequence, "root offset must be 0, got %d", seq[1])
	}
	for i := 3; i < len(seq); i += 2 {
		gon := seq[i-1]
		if seq[i] < 1 || seq[i] >= gon {
			return New(ErrCodeInvalidSequence, "offset at position %d must be in [1,%d), got %d", i, gon, seq[i])
		}
	}
	return nil
}

// ValidateChirality checks a chirality label.
func ValidateChirality(label string) error {
	switch strings.ToLower(label) {
	case "standard", "flipped":
		return nil
	}
	return New(ErrCodeInvalidInput, "unknown chirality %q (want standard or flipped)", label)
}
