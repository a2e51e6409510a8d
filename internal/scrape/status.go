package scrape

import (
	"errors"

	"tvscrape/internal/mdb"
	"tvscrape/internal/placement"
)

// ScrapeStatus is the machine-readable terminal outcome of one scrape,
// distinct from (and finer-grained than) the pending/running/success/failed
// lifecycle queue.Status tracks at the job/task-row level.
type ScrapeStatus string

const (
	StatusSuccess           ScrapeStatus = "success"
	StatusNoMatch           ScrapeStatus = "no_match"
	StatusSearchFailed      ScrapeStatus = "search_failed"
	StatusAPIFailed         ScrapeStatus = "api_failed"
	StatusNeedSelection     ScrapeStatus = "need_selection"
	StatusNeedSeasonEpisode ScrapeStatus = "need_season_episode"
	StatusNFOFailed         ScrapeStatus = "nfo_failed"
	StatusMoveFailed        ScrapeStatus = "move_failed"
	StatusFileConflict      ScrapeStatus = "file_conflict"
	StatusMDBConflict       ScrapeStatus = "mdb_conflict"
)

// stage names passed to classify, identifying which step raised err.
const (
	stageSearch        = "resolve_mdb_candidate"
	stageSeriesDetails = "fetch_series_details"
	stageSeasonDetail  = "fetch_season_detail"
	stageNFO           = "generate_nfo_body"
	stagePlacement     = "placement"
)

// classify maps an error raised during a named stage to the ScrapeStatus the
// orchestrator should report. It is used only inside the orchestrator; the
// queue package never sees a ScrapeStatus, only queue.Status.
func classify(stage string, err error) ScrapeStatus {
	if errors.Is(err, placement.ErrDestinationExists) {
		return StatusFileConflict
	}
	if errors.Is(err, mdb.ErrTimeout) || errors.Is(err, mdb.ErrConnection) {
		if stage == stageSearch {
			return StatusSearchFailed
		}
		return StatusAPIFailed
	}

	switch stage {
	case stageSearch:
		return StatusSearchFailed
	case stageSeriesDetails, stageSeasonDetail:
		return StatusAPIFailed
	case stageNFO:
		return StatusNFOFailed
	case stagePlacement:
		return StatusMoveFailed
	default:
		return StatusMoveFailed
	}
}
