package scrape

import (
	"tvscrape/internal/conflict"
	"tvscrape/internal/mdb"
	"tvscrape/internal/parser"
)

// ScrapeResult is the terminal outcome of one orchestrator run. Fields
// beyond FilePath/Status/Message/ScrapeLogs are populated only as far as
// the pipeline reached before stopping.
type ScrapeResult struct {
	FilePath string
	Status   ScrapeStatus
	Message  string

	ParsedInfo parser.ParsedInfo

	// SelectedID is the MDB series id the scrape settled on, whether taken
	// directly from a path tag or chosen from search results.
	SelectedID int64

	// SearchResults is populated only on StatusNeedSelection, each entry
	// enriched with NumberSeasons/NumberEpisodes from a per-candidate
	// series-detail fetch.
	SearchResults []mdb.SearchResult

	SeriesInfo  *mdb.Series
	SeasonInfo  *mdb.Season
	EpisodeInfo *mdb.Episode

	Season  int
	Episode int

	DestPath string
	NFOPath  string

	EmbyConflict conflict.Status

	ScrapeLogs []ScrapeLogStep
}
