package artwork

import (
	"context"
	"os"
	"path/filepath"

	"tvscrape/internal/mdb"
)

const (
	posterFilename   = "poster.jpg"
	backdropFilename = "backdrop.jpg"
	imageSize        = "original"
)

// DownloadSeriesImages fetches the series poster and backdrop into
// seriesDir, skipping either one that's already present or toggled off.
func DownloadSeriesImages(ctx context.Context, client *mdb.Client, fetcher *Fetcher, series mdb.Series, seriesDir string, downloadPoster, downloadFanart bool) BatchResult {
	var items []BatchItem

	if downloadPoster && series.PosterPath != "" && !exists(filepath.Join(seriesDir, posterFilename)) {
		items = append(items, BatchItem{
			URL:     client.ImageURL(series.PosterPath, imageSize),
			Request: Request{SourcePath: series.PosterPath, SaveDir: seriesDir, Filename: posterFilename},
		})
	}
	if downloadFanart && series.BackdropPath != "" && !exists(filepath.Join(seriesDir, backdropFilename)) {
		items = append(items, BatchItem{
			URL:     client.ImageURL(series.BackdropPath, imageSize),
			Request: Request{SourcePath: series.BackdropPath, SaveDir: seriesDir, Filename: backdropFilename},
		})
	}

	if len(items) == 0 {
		return BatchResult{}
	}
	return fetcher.DownloadBatch(ctx, items)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
