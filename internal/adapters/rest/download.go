package rest

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// RFC 5987 extended parameter, preferred when both forms are present.
	utf8FilenamePattern  = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;]+)`)
	plainFilenamePattern = regexp.MustCompile(`(?i)filename="?([^";]+)"?`)
)

// filenameFromDisposition extracts the attachment filename from a
// Content-Disposition header. The result is reduced to a bare file name so a
// hostile header cannot steer the caller outside its output directory.
// Returns "" when the header carries no usable name.
func filenameFromDisposition(disposition string) string {
	if disposition == "" {
		return ""
	}

	if match := utf8FilenamePattern.FindStringSubmatch(disposition); len(match) == 2 {
		decoded, err := url.PathUnescape(match[1])
		if err != nil {
			return sanitizeFilename(match[1])
		}
		return sanitizeFilename(decoded)
	}

	if match := plainFilenamePattern.FindStringSubmatch(disposition); len(match) == 2 {
		return sanitizeFilename(match[1])
	}
	return ""
}

// sanitizeFilename strips any path components from a server-supplied name.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
