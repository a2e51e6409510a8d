package subtitle

import (
	"fmt"
	"os"
	"path/filepath"

	"tvscrape/internal/queue"
)

// Associate matches every subtitle file found under folderPath to the video
// it belongs to. When videoFiles is nil, the video files are discovered by
// scanning folderPath for recognized video extensions.
func Associate(folderPath string, videoFiles []string) ([]Association, error) {
	if videoFiles == nil {
		discovered, err := discoverVideoFiles(folderPath)
		if err != nil {
			return nil, err
		}
		videoFiles = discovered
	}

	subtitles, err := Scan(folderPath)
	if err != nil {
		return nil, err
	}

	associations := make([]Association, 0, len(videoFiles))
	for _, video := range videoFiles {
		videoBase := baseName(filepath.Base(video))
		assoc := Association{Video: filepath.Base(video), VideoPath: video}
		for _, sub := range subtitles {
			subtitleBase := baseName(sub.Filename)
			if namesMatch(subtitleBase, videoBase) {
				matched := sub
				matched.AssociatedVideo = video
				assoc.Subtitles = append(assoc.Subtitles, matched)
			}
		}
		associations = append(associations, assoc)
	}
	return associations, nil
}

func discoverVideoFiles(folderPath string) ([]string, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, fmt.Errorf("read video folder: %w", err)
	}

	var videos []string
	for _, entry := range entries {
		if entry.IsDir() || !queue.IsVideoFile(entry.Name()) {
			continue
		}
		videos = append(videos, filepath.Join(folderPath, entry.Name()))
	}
	return videos, nil
}
