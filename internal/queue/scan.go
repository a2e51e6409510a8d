package queue

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// videoExtensions lists file extensions treated as scrapeable video files
// during a directory scan.
var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".wmv": true, ".mov": true,
	".flv": true, ".rmvb": true, ".ts": true, ".m2ts": true, ".bdmv": true,
	".webm": true, ".3gp": true, ".mpg": true, ".mpeg": true, ".vob": true,
	".iso": true,
}

// subtitleScanExtensions lists subtitle extensions a scan also picks up, but
// only when the filename carries an SxxEyy episode marker of its own (a bare
// subtitle alongside a video is matched later by C5, not discovered here).
var subtitleScanExtensions = map[string]bool{
	".ass": true, ".ssa": true, ".srt": true, ".vtt": true, ".sub": true,
}

var subtitleEpisodePattern = regexp.MustCompile(`[Ss]\d+[Ee]\d+`)

// blockedScanPaths are system directories a scan must never walk into.
var blockedScanPaths = []string{
	"/etc", "/var", "/usr", "/bin", "/sbin", "/boot", "/root", "/proc", "/sys",
	`C:\Windows`, `C:\Program Files`, `C:\Program Files (x86)`,
}

// IsVideoFile reports whether path has a supported video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsScanSubtitleFile reports whether path is a subtitle file whose name
// itself carries an episode marker, making it eligible for direct scan
// discovery rather than later video-relative matching.
func IsScanSubtitleFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !subtitleScanExtensions[ext] {
		return false
	}
	return subtitleEpisodePattern.MatchString(filepath.Base(path))
}

// SanitizeScanPath validates a user-supplied scan path before the worker
// walks it: it rejects path-traversal markers, NUL bytes, and any path that
// resolves under a blocked system directory, then returns the cleaned,
// absolute path.
func SanitizeScanPath(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("scan path must not be empty")
	}
	for _, pattern := range []string{"..", "~", "\x00"} {
		if strings.Contains(raw, pattern) {
			return "", errors.New("scan path contains a disallowed pattern: " + pattern)
		}
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("resolve scan path: %w", err)
	}
	clean := filepath.Clean(abs)
	normalized := strings.ReplaceAll(clean, `\`, "/")
	for _, blocked := range blockedScanPaths {
		blockedNormalized := strings.ReplaceAll(blocked, `\`, "/")
		if normalized == blockedNormalized || strings.HasPrefix(normalized, blockedNormalized+"/") {
			return "", fmt.Errorf("refusing to scan blocked system directory: %s", blocked)
		}
	}
	return clean, nil
}
