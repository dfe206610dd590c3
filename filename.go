package lakegate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidFileName reports whether name can address a file inside a container.
// A valid name:
//   - is relative and non-empty
//   - has no empty, "." or ".." segments
//   - does not end with "/"
//   - is valid UTF-8 without control characters
//
// Spaces and other printable characters are allowed since data lake paths
// commonly carry them.
func IsValidFileName(name string) bool {
	if name == "" || name[0] == '/' || strings.HasSuffix(name, "/") {
		return false
	}

	if !utf8.ValidString(name) {
		return false
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}

	for seg := range strings.SplitSeq(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}

	return true
}
