package errors

import (
	"strings"
	"unicode"
)

// ValidatePropertyName validates an item field name supplied for the
// start/end properties. Names are used verbatim for map and struct field
// lookup, so anything non-printable or empty is rejected up front.
func ValidatePropertyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "property name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidConfig, "property name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "property name %q contains invalid characters", name)
		}
	}
	return nil
}

// ValidateSourcePath validates an items-file path or URL. Remote sources
// must use http or https; local paths only need to be non-empty.
func ValidateSourcePath(source string) error {
	if source == "" {
		return New(ErrCodeInvalidSource, "source cannot be empty")
	}
	if strings.Contains(source, "\x00") {
		return New(ErrCodeInvalidSource, "source contains invalid characters")
	}
	if strings.Contains(source, "://") {
		if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
			return New(ErrCodeInvalidSource, "remote sources must use http or https")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety. It ensures the URL has
// a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidSource, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidSource, "URL must use http or https scheme")
	}
	return nil
}
