package placement

import (
	"regexp"
	"strings"
)

var (
	unsafeCharsPattern  = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
	seasonFolderPattern = regexp.MustCompile(`(?i)^Season\s+\d+$`)
)

// SanitizeSegment cleans a single rendered path segment: unsafe filesystem
// characters are dropped, runs of whitespace collapse to one space, leading
// and trailing spaces/dots are trimmed, and the artifacts left behind when a
// year or mdb id is absent from the template (" ()" and " [tmdbid-]") are
// removed. Sanitization is idempotent.
func SanitizeSegment(segment string) string {
	cleaned := unsafeCharsPattern.ReplaceAllString(segment, "")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = strings.ReplaceAll(cleaned, " ()", "")
	cleaned = strings.ReplaceAll(cleaned, " [tmdbid-]", "")
	cleaned = strings.Trim(cleaned, " .")
	return cleaned
}
