package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// subtitleExtensions lists every sidecar extension this package recognizes
// when scanning a folder for subtitle files.
var subtitleExtensions = map[string]bool{
	".srt": true, ".ass": true, ".ssa": true, ".sub": true,
	".idx": true, ".vtt": true, ".sup": true,
}

// IsSubtitleFile reports whether path has a recognized subtitle extension.
func IsSubtitleFile(path string) bool {
	return subtitleExtensions[strings.ToLower(filepath.Ext(path))]
}

// Scan walks folderPath (non-recursively, matching how a season folder is
// laid out) and returns every subtitle file found, with its language
// detected from the filename.
func Scan(folderPath string) ([]File, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, fmt.Errorf("read subtitle folder: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !IsSubtitleFile(entry.Name()) {
			continue
		}
		files = append(files, File{
			Path:      filepath.Join(folderPath, entry.Name()),
			Filename:  entry.Name(),
			Extension: strings.ToLower(filepath.Ext(entry.Name())),
			Language:  extractLanguage(entry.Name()),
		})
	}
	return files, nil
}
