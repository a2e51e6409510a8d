package artwork

import (
	"context"
	"fmt"
	"path/filepath"

	"tvscrape/internal/mdb"
)

// DownloadEpisodeImage fetches an episode's still image into seasonDir,
// named after the destination video's stem (STEM.jpg) so media managers
// pair it with the placed video file. Returns a skipped/no-op Result when
// the season has no episode list, the episode has no still image, or the
// image already exists.
func DownloadEpisodeImage(ctx context.Context, client *mdb.Client, fetcher *Fetcher, seasonDetail *mdb.Season, episodeNumber int, seasonDir, videoStem string) Result {
	req := Request{SaveDir: seasonDir, Filename: videoStem + ".jpg"}

	if seasonDetail == nil || len(seasonDetail.Episodes) == 0 {
		return Result{Request: req, Skipped: true}
	}

	var stillPath string
	for _, ep := range seasonDetail.Episodes {
		if ep.EpisodeNumber == episodeNumber {
			stillPath = ep.StillPath
			break
		}
	}
	if stillPath == "" {
		return Result{Request: req, Skipped: true}
	}

	dest := filepath.Join(seasonDir, req.Filename)
	if exists(dest) {
		return Result{Request: req, Skipped: true}
	}

	url := client.ImageURL(stillPath, imageSize)
	if url == "" {
		return Result{Request: req, Err: fmt.Errorf("artwork: empty still image URL")}
	}

	req.SourcePath = stillPath
	return fetcher.Download(ctx, url, req)
}
