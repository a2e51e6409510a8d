package sidecar

import (
	"encoding/xml"
	"fmt"

	"tvscrape/internal/mdb"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func marshal(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal nfo: %w", err)
	}
	out := make([]byte, 0, len(xmlHeader)+len(body)+1)
	out = append(out, xmlHeader...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// GenerateTVShowNFO renders tvshow.nfo for series.
func GenerateTVShowNFO(series mdb.Series) ([]byte, error) {
	title := series.Name
	if title == "" {
		title = series.OriginalName
	}
	return marshal(tvShowNFO{
		Title:     title,
		ShowTitle: title,
		Plot:      series.Overview,
		Genres:    series.Genres,
		Premiered: series.FirstAirDate,
		Status:    series.Status,
		Rating:    series.VoteAverage,
		UniqueID:  mdbUniqueID(series.ID),
	})
}

// seasonDataFor returns the season record within series matching
// seasonNumber, or a zero-value Season if not present.
func seasonDataFor(series mdb.Series, seasonNumber int) mdb.Season {
	for _, s := range series.Seasons {
		if s.SeasonNumber == seasonNumber {
			return s
		}
	}
	return mdb.Season{SeasonNumber: seasonNumber}
}

// GenerateSeasonNFO renders season.nfo for the season seasonNumber within
// series, using whatever season metadata is already attached to series
// (callers wanting episode-level detail should pass a series populated via
// mdb.Client.GetSeriesWithEpisodes).
func GenerateSeasonNFO(series mdb.Series, seasonNumber int) ([]byte, error) {
	season := seasonDataFor(series, seasonNumber)
	title := season.Name
	if title == "" {
		title = fmt.Sprintf("Season %d", seasonNumber)
	}
	return marshal(seasonNFO{
		SeasonNumber: seasonNumber,
		Title:        title,
		Plot:         season.Overview,
		Premiered:    season.AirDate,
		UniqueID:     mdbUniqueID(series.ID),
	})
}

// episodeDataFor returns the episode within season matching episodeNumber,
// or a zero-value Episode if not present.
func episodeDataFor(season *mdb.Season, episodeNumber int) mdb.Episode {
	if season == nil {
		return mdb.Episode{EpisodeNumber: episodeNumber}
	}
	for _, ep := range season.Episodes {
		if ep.EpisodeNumber == episodeNumber {
			return ep
		}
	}
	return mdb.Episode{EpisodeNumber: episodeNumber}
}

// GenerateEpisodeNFO renders an episode sidecar for (seasonNumber,
// episodeNumber) within series. seasonDetail is the full season record
// (with episodes) when available — typically the result of
// mdb.Client.GetSeason — and may be nil, in which case only series- and
// position-level fields are populated.
func GenerateEpisodeNFO(series mdb.Series, seasonNumber, episodeNumber int, seasonDetail *mdb.Season) ([]byte, error) {
	episode := episodeDataFor(seasonDetail, episodeNumber)
	title := episode.Name
	if title == "" {
		title = fmt.Sprintf("Episode %d", episodeNumber)
	}
	showTitle := series.Name
	if showTitle == "" {
		showTitle = series.OriginalName
	}
	return marshal(episodeNFO{
		Title:     title,
		ShowTitle: showTitle,
		Season:    seasonNumber,
		Episode:   episodeNumber,
		Plot:      episode.Overview,
		Aired:     episode.AirDate,
		Rating:    episode.VoteAverage,
		UniqueID:  mdbUniqueID(series.ID),
	})
}
