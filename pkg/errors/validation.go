package errors

import (
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node identifiers accepted from input records.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier from an input record.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return ForNode(ErrCodeInvalidNodeID, id[:32], "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return ForNode(ErrCodeInvalidNodeID, id, "node id %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateColor validates a CSS-like color string used in options.
// Empty strings are accepted and mean "inherit".
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if strings.ContainsAny(c, "<>\"'`;") {
		return New(ErrCodeInvalidOption, "color %q contains invalid characters", c)
	}
	if strings.HasPrefix(c, "#") {
		hex := c[1:]
		if len(hex) != 3 && len(hex) != 4 && len(hex) != 6 && len(hex) != 8 {
			return New(ErrCodeInvalidOption, "invalid hex color %q", c)
		}
		for _, r := range hex {
			if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
				return New(ErrCodeInvalidOption, "invalid hex color %q", c)
			}
		}
	}
	return nil
}

// ValidateURL validates an image URL for url(...) marker symbols.
// It ensures the URL has a safe scheme (http, https or data).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidOption, "URL cannot be empty")
	}

	for _, prefix := range []string{"http://", "https://", "data:image/"} {
		if strings.HasPrefix(rawURL, prefix) {
			return nil
		}
	}
	return New(ErrCodeInvalidOption, "URL must use http, https or data:image scheme")
}
