package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tvscrape/internal/artwork"
	"tvscrape/internal/conflict"
	"tvscrape/internal/config"
	"tvscrape/internal/fileutil"
	"tvscrape/internal/logging"
	"tvscrape/internal/mdb"
	"tvscrape/internal/parser"
	"tvscrape/internal/placement"
	"tvscrape/internal/queue"
	"tvscrape/internal/sidecar"
	"tvscrape/internal/subtitle"
)

// Request describes one file to scrape. SelectedID/SelectedSeason/
// SelectedEpisode let a caller resume a run that previously stopped at
// need_selection or need_season_episode, after a human (or the CLI's
// --select-id flag) made the missing decision.
type Request struct {
	FilePath          string
	OutputDir         string
	MetadataDir       string
	LinkMode          queue.LinkMode
	DeleteEmptyParent bool
	AdvancedSettings  string

	AutoSelect      bool
	SelectedID      int64
	SelectedSeason  int
	SelectedEpisode int
}

// Orchestrator composes the per-component collaborators into the single
// sequential scrape state machine described by the step table: existence
// check, parse, resolve candidate, candidate selection, series details,
// season/episode resolution, season detail, conflict check, NFO body
// generation, placement, sidecar writes, artwork, subtitles.
type Orchestrator struct {
	cfg      *config.Config
	parser   *parser.Parser
	mdb      *mdb.Client
	conflict conflict.Service
	artwork  *artwork.Fetcher
	logger   *slog.Logger
}

// New builds an Orchestrator. mdbClient may be nil (e.g. not yet
// configured); every MDB-dependent step then fails with api_failed/
// search_failed rather than panicking.
func New(cfg *config.Config, mdbClient *mdb.Client, conflictSvc conflict.Service, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if conflictSvc == nil {
		conflictSvc = conflict.NoopService{}
	}
	return &Orchestrator{
		cfg:      cfg,
		parser:   parser.New(parser.DefaultPlugins()...),
		mdb:      mdbClient,
		conflict: conflictSvc,
		artwork:  artwork.NewFetcher(),
		logger:   logging.NewComponentLogger(logger, "scrape"),
	}
}

// Run executes the full state machine for req, returning a terminal
// ScrapeResult. It never returns an error: every failure mode is expressed
// as a ScrapeStatus plus a message, so callers (RunTask in particular) can
// persist the outcome without special-casing transport errors.
func (o *Orchestrator) Run(ctx context.Context, req Request) ScrapeResult {
	log := &stepLog{}
	result := ScrapeResult{FilePath: req.FilePath}

	resolved, err := Resolve(o.cfg, req.AdvancedSettings)
	if err != nil {
		log.begin("resolve_config")
		log.fail(err.Error())
		return o.finish(ctx, result, StatusMoveFailed, err.Error(), log)
	}

	log.begin("existence_check")
	info, err := os.Stat(req.FilePath)
	if err != nil || info.IsDir() {
		log.fail("file not found: " + req.FilePath)
		return o.finish(ctx, result, StatusMoveFailed, "file not found", log)
	}
	log.success("file present")

	log.begin("parse")
	parsed := o.parser.Parse(filepath.Base(req.FilePath), req.FilePath)
	result.ParsedInfo = parsed
	if !parsed.HasMDBID() && strings.TrimSpace(parsed.SeriesName) == "" {
		log.fail("no series name or mdb id could be extracted from the filename/path")
		return o.finish(ctx, result, StatusNoMatch, "unable to identify series from filename", log)
	}
	log.success(fmt.Sprintf("parsed series=%q season=%d episode=%d confidence=%.2f", parsed.SeriesName, parsed.Season, parsed.Episode, parsed.Confidence))

	candidates, status, msg, ok := o.resolveCandidate(ctx, req, parsed, log)
	if !ok {
		return o.finish(ctx, result, status, msg, log)
	}

	selectedID, status, msg, ok := o.selectCandidate(ctx, req, parsed, candidates, &result, log)
	if !ok {
		return o.finish(ctx, result, status, msg, log)
	}
	result.SelectedID = selectedID

	log.begin("fetch_series_details")
	if o.mdb == nil {
		log.fail("mdb client not configured")
		return o.finish(ctx, result, StatusAPIFailed, "mdb client not configured", log)
	}
	series, err := o.mdb.GetSeriesWithEpisodes(ctx, selectedID, o.cfg.MDB.Language, true)
	if err != nil || series == nil {
		msg := "series details unavailable"
		if err != nil {
			msg = err.Error()
		}
		log.fail(msg)
		return o.finish(ctx, result, classify(stageSeriesDetails, err), msg, log)
	}
	result.SeriesInfo = series
	log.success(fmt.Sprintf("fetched series %q (id=%d)", series.Name, series.ID))

	season, episode, status, msg, ok := o.resolveSeasonEpisode(req, parsed, series, &result, log)
	if !ok {
		return o.finish(ctx, result, status, msg, log)
	}
	result.Season, result.Episode = season, episode

	log.begin("fetch_season_detail")
	seasonDetail, err := o.mdb.GetSeason(ctx, selectedID, season, o.cfg.MDB.Language)
	if err != nil {
		log.warn("season detail fetch failed, continuing without episode-level metadata: " + err.Error())
	} else if seasonDetail == nil {
		log.warn("season detail not found, continuing without episode-level metadata")
	} else {
		result.SeasonInfo = seasonDetail
		log.success(fmt.Sprintf("fetched season %d detail (%d episodes)", season, len(seasonDetail.Episodes)))
	}

	if status, msg, ok := o.checkConflict(ctx, series, season, episode, &result, log); !ok {
		return o.finish(ctx, result, status, msg, log)
	}

	tvShowNFO, seasonNFO, episodeNFO, status, msg, ok := o.generateNFOs(series, season, episode, seasonDetail, log)
	if !ok {
		return o.finish(ctx, result, status, msg, log)
	}

	placementResult, seriesDir, seasonDir, status, msg, ok := o.placeFile(req, resolved, series, season, episode, seasonDetail, log)
	if !ok {
		return o.finish(ctx, result, status, msg, log)
	}
	result.DestPath = placementResult.DestPath

	metaSeriesDir, metaSeasonDir := seriesDir, seasonDir
	if strings.TrimSpace(resolved.Metadata.MetadataDir) != "" {
		metaSeriesDir, metaSeasonDir = o.metadataDirs(resolved, series, season)
	}

	destStem := strings.TrimSuffix(filepath.Base(placementResult.DestPath), filepath.Ext(placementResult.DestPath))
	o.writeSidecars(resolved, metaSeriesDir, metaSeasonDir, destStem, tvShowNFO, seasonNFO, episodeNFO, &result, log)

	o.downloadArtwork(ctx, resolved, series, seasonDetail, episode, metaSeriesDir, metaSeasonDir, destStem, log)

	o.relocateSubtitles(req.FilePath, seasonDir, destStem, log)

	return o.finish(ctx, result, StatusSuccess, "scrape completed", log)
}

func (o *Orchestrator) finish(ctx context.Context, result ScrapeResult, status ScrapeStatus, message string, log *stepLog) ScrapeResult {
	result.Status = status
	result.Message = message
	result.ScrapeLogs = log.finish()
	level := slog.LevelInfo
	if status != StatusSuccess {
		level = slog.LevelWarn
	}
	logger := logging.WithContext(ctx, o.logger)
	logger.Log(ctx, level, "scrape finished",
		logging.Args(logging.String("file_path", result.FilePath), logging.String("status", string(status)), logging.String("message", message))...)
	return result
}

// resolveCandidate implements "Resolve MDB candidate": a path-derived
// mdb_id short-circuits search entirely.
func (o *Orchestrator) resolveCandidate(ctx context.Context, req Request, parsed parser.ParsedInfo, log *stepLog) ([]mdb.SearchResult, ScrapeStatus, string, bool) {
	log.begin("resolve_mdb_candidate")

	if parsed.HasMDBID() {
		log.info(fmt.Sprintf("using mdb id %d from path, skipping search", parsed.MDBID))
		return nil, "", "", true
	}

	if o.mdb == nil {
		log.fail("mdb client not configured")
		return nil, StatusSearchFailed, "mdb client not configured", false
	}

	response, err := o.mdb.SearchWithFallback(ctx, parsed.SeriesName, o.cfg.MDB.Language)
	if err != nil {
		log.fail(err.Error())
		return nil, classify(stageSearch, err), err.Error(), false
	}

	var adult []mdb.SearchResult
	for _, r := range response.Results {
		if r.Adult {
			adult = append(adult, r)
		}
	}
	if len(adult) == 0 {
		log.fail("search returned no results")
		return nil, StatusNoMatch, "no matching series found", false
	}
	if response.EffectiveQuery != "" {
		log.info(fmt.Sprintf("matched via fallback query %q", response.EffectiveQuery))
	}
	log.success(fmt.Sprintf("search returned %d candidate(s)", len(adult)))
	return adult, "", "", true
}

// selectCandidate implements "Candidate selection". When candidates is nil
// (mdb_id came from the path), selection is a no-op pass-through.
func (o *Orchestrator) selectCandidate(ctx context.Context, req Request, parsed parser.ParsedInfo, candidates []mdb.SearchResult, result *ScrapeResult, log *stepLog) (int64, ScrapeStatus, string, bool) {
	log.begin("candidate_selection")

	if parsed.HasMDBID() {
		log.info("selection skipped, mdb id taken from path")
		return int64(parsed.MDBID), "", "", true
	}

	if req.SelectedID != 0 {
		log.success(fmt.Sprintf("using caller-selected candidate id=%d", req.SelectedID))
		return req.SelectedID, "", "", true
	}

	autoSelect := req.AutoSelect
	if autoSelect && len(candidates) == 1 {
		log.success(fmt.Sprintf("auto-selected sole candidate id=%d", candidates[0].ID))
		return candidates[0].ID, "", "", true
	}

	enriched := make([]mdb.SearchResult, len(candidates))
	for i, candidate := range candidates {
		enriched[i] = candidate
		if o.mdb == nil {
			continue
		}
		if series, err := o.mdb.GetSeries(ctx, candidate.ID, o.cfg.MDB.Language); err == nil && series != nil {
			enriched[i].NumberSeasons = series.NumberOfSeasons
			enriched[i].NumberEpisodes = series.NumberOfEpisodes
		}
	}
	result.SearchResults = enriched

	log.fail(fmt.Sprintf("%d candidates require manual selection", len(enriched)))
	return 0, StatusNeedSelection, "multiple candidates require selection", false
}

// resolveSeasonEpisode implements "Determine season/episode".
func (o *Orchestrator) resolveSeasonEpisode(req Request, parsed parser.ParsedInfo, series *mdb.Series, result *ScrapeResult, log *stepLog) (int, int, ScrapeStatus, string, bool) {
	log.begin("determine_season_episode")

	season := parsed.Season
	if season <= 0 {
		season = 1
	}
	if req.SelectedSeason > 0 {
		season = req.SelectedSeason
	}

	episode := parsed.Episode
	if req.SelectedEpisode > 0 {
		episode = req.SelectedEpisode
	}

	if episode <= 0 {
		if series.NumberOfEpisodes > 1 {
			result.SeriesInfo = series
			log.fail("episode number missing for a multi-episode series")
			return season, 0, StatusNeedSeasonEpisode, "episode number required", false
		}
		episode = 1
	}

	log.success(fmt.Sprintf("season=%d episode=%d", season, episode))
	return season, episode, "", "", true
}

func (o *Orchestrator) checkConflict(ctx context.Context, series *mdb.Series, season, episode int, result *ScrapeResult, log *stepLog) (ScrapeStatus, string, bool) {
	log.begin("conflict_check")

	status, err := o.conflict.Check(ctx, series.Name, int(series.ID), season, episode)
	if err != nil {
		log.warn("conflict check failed, continuing: " + err.Error())
		return "", "", true
	}
	result.EmbyConflict = status

	switch status {
	case conflict.EpisodeExists:
		log.fail("episode already present in the media library")
		return StatusMDBConflict, "episode already exists in library", false
	case conflict.SeriesExists:
		log.success("series already present in library, continuing")
	default:
		log.success("no conflict")
	}
	return "", "", true
}

func (o *Orchestrator) generateNFOs(series *mdb.Series, season, episode int, seasonDetail *mdb.Season, log *stepLog) ([]byte, []byte, []byte, ScrapeStatus, string, bool) {
	log.begin("generate_nfo_body")

	tvShowNFO, err := sidecar.GenerateTVShowNFO(*series)
	if err != nil {
		log.fail(err.Error())
		return nil, nil, nil, classify(stageNFO, err), err.Error(), false
	}
	seasonNFO, err := sidecar.GenerateSeasonNFO(*series, season)
	if err != nil {
		log.fail(err.Error())
		return nil, nil, nil, classify(stageNFO, err), err.Error(), false
	}
	episodeNFO, err := sidecar.GenerateEpisodeNFO(*series, season, episode, seasonDetail)
	if err != nil {
		log.fail(err.Error())
		return nil, nil, nil, classify(stageNFO, err), err.Error(), false
	}

	log.success("generated tvshow/season/episode nfo bodies")
	return tvShowNFO, seasonNFO, episodeNFO, "", "", true
}

func (o *Orchestrator) placeFile(req Request, resolved ResolvedConfig, series *mdb.Series, season, episode int, seasonDetail *mdb.Season, log *stepLog) (placement.Result, string, string, ScrapeStatus, string, bool) {
	log.begin("placement")

	libraryRoot := req.OutputDir
	mode := placement.Mode(resolved.Organize.LinkMode)
	if mode == placement.ModeInPlace {
		libraryRoot = placement.ResolveInPlaceOutputDir(req.FilePath)
		log.info("原地整理: placing in-place relative to " + libraryRoot)
	}

	placementReq := placement.Request{
		SourcePath:        req.FilePath,
		LibraryRoot:       libraryRoot,
		SeriesTemplate:    resolved.Naming.SeriesFolder,
		SeasonTemplate:    resolved.Naming.SeasonFolder,
		EpisodeTemplate:   resolved.Naming.EpisodeFile,
		Mode:              mode,
		Vars:              templateVars(series, season, episode, seasonDetail),
		DeleteEmptyParent: resolved.Organize.DeleteEmptyParent,
	}

	preview, err := placement.Preview(placementReq)
	if err != nil {
		log.fail(err.Error())
		return placement.Result{}, "", "", StatusMoveFailed, err.Error(), false
	}

	placementResult, err := placement.Execute(placementReq)
	if err != nil {
		log.fail(err.Error())
		return placement.Result{}, "", "", classify(stagePlacement, err), err.Error(), false
	}

	log.success("placed file at " + placementResult.DestPath)
	return placementResult, preview.SeriesDir, preview.SeasonDir, "", "", true
}

func templateVars(series *mdb.Series, season, episode int, seasonDetail *mdb.Season) placement.Variables {
	var episodeTitle, airDate string
	if seasonDetail != nil {
		for _, ep := range seasonDetail.Episodes {
			if ep.EpisodeNumber == episode {
				episodeTitle, airDate = ep.Name, ep.AirDate
				break
			}
		}
	}
	return placement.Variables{
		Title:         series.Name,
		OriginalTitle: series.OriginalName,
		Season:        season,
		Episode:       episode,
		EpisodeTitle:  episodeTitle,
		Year:          yearFromDate(series.FirstAirDate),
		MDBID:         int(series.ID),
		AirDate:       airDate,
	}
}

func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// metadataDirs recomputes series/season directories under a metadata root
// distinct from the library root, when advanced settings request one.
func (o *Orchestrator) metadataDirs(resolved ResolvedConfig, series *mdb.Series, season int) (string, string) {
	preview, err := placement.Preview(placement.Request{
		SourcePath:      "placeholder.mkv",
		LibraryRoot:     resolved.Metadata.MetadataDir,
		SeriesTemplate:  resolved.Naming.SeriesFolder,
		SeasonTemplate:  resolved.Naming.SeasonFolder,
		EpisodeTemplate: resolved.Naming.EpisodeFile,
		Vars:            templateVars(series, season, 1, nil),
	})
	if err != nil {
		return "", ""
	}
	return preview.SeriesDir, preview.SeasonDir
}

func (o *Orchestrator) writeSidecars(resolved ResolvedConfig, seriesDir, seasonDir, destStem string, tvShowNFO, seasonNFO, episodeNFO []byte, result *ScrapeResult, log *stepLog) {
	log.begin("write_nfo")

	if !resolved.Metadata.NFOEnabled {
		log.info("nfo writing disabled by config")
		return
	}
	if seriesDir == "" || seasonDir == "" {
		log.warn("no metadata directory resolved, skipping nfo writes")
		return
	}
	if err := os.MkdirAll(seasonDir, 0o755); err != nil {
		log.warn("failed to create metadata directory: " + err.Error())
		return
	}

	if wrote, err := writeIfAbsent(filepath.Join(seriesDir, "tvshow.nfo"), tvShowNFO); err != nil {
		log.warn("failed to write tvshow.nfo: " + err.Error())
	} else if wrote {
		log.success("wrote tvshow.nfo")
	} else {
		log.info("tvshow.nfo already present, left untouched")
	}

	if wrote, err := writeIfAbsent(filepath.Join(seasonDir, "season.nfo"), seasonNFO); err != nil {
		log.warn("failed to write season.nfo: " + err.Error())
	} else if wrote {
		log.success("wrote season.nfo")
	} else {
		log.info("season.nfo already present, left untouched")
	}

	episodeNFOPath := filepath.Join(seasonDir, destStem+".nfo")
	if err := os.WriteFile(episodeNFOPath, episodeNFO, 0o644); err != nil {
		log.warn("failed to write episode nfo: " + err.Error())
		return
	}
	result.NFOPath = episodeNFOPath
	log.success("wrote " + filepath.Base(episodeNFOPath))
}

func writeIfAbsent(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Orchestrator) downloadArtwork(ctx context.Context, resolved ResolvedConfig, series *mdb.Series, seasonDetail *mdb.Season, episode int, seriesDir, seasonDir, destStem string, log *stepLog) {
	log.begin("artwork")

	if o.mdb == nil || (!resolved.Download.Poster && !resolved.Download.Backdrop && !resolved.Download.Thumb) {
		log.info("artwork downloads disabled")
		return
	}

	if resolved.Download.Poster || resolved.Download.Backdrop {
		seriesBatch := artwork.DownloadSeriesImages(ctx, o.mdb, o.artwork, *series, seriesDir, resolved.Download.Poster, resolved.Download.Backdrop)
		log.info(fmt.Sprintf("series artwork: %d downloaded, %d skipped, %d failed", seriesBatch.Success, seriesBatch.Skipped, seriesBatch.Failed))
	}

	if resolved.Download.Thumb {
		stillResult := artwork.DownloadEpisodeImage(ctx, o.mdb, o.artwork, seasonDetail, episode, seasonDir, destStem)
		if stillResult.Err != nil {
			log.warn("episode still image failed: " + stillResult.Err.Error())
		} else if stillResult.Skipped {
			log.info("episode still image skipped (absent or already present)")
		} else {
			log.success("downloaded episode still image")
		}
	}
}

func (o *Orchestrator) relocateSubtitles(videoPath, seasonDir, destStem string, log *stepLog) {
	log.begin("subtitles")

	if o.cfg != nil && !o.cfg.Subtitles.Enabled {
		log.info("subtitle matching disabled")
		return
	}

	associations, err := subtitle.Associate(filepath.Dir(videoPath), []string{videoPath})
	if err != nil {
		log.warn("subtitle scan failed: " + err.Error())
		return
	}
	if len(associations) == 0 || len(associations[0].Subtitles) == 0 {
		log.info("no matching subtitles found")
		return
	}

	moved, failed := 0, 0
	for _, sub := range associations[0].Subtitles {
		renamed := subtitle.Rename(sub.Path, destStem, true)
		if !renamed.Success {
			failed++
			log.warn("subtitle rename failed: " + renamed.Err.Error())
			continue
		}
		if err := relocateFile(renamed.DestPath, filepath.Join(seasonDir, filepath.Base(renamed.DestPath))); err != nil {
			failed++
			log.warn("subtitle move failed: " + err.Error())
			continue
		}
		moved++
	}
	log.info(fmt.Sprintf("subtitles: %d moved, %d failed", moved, failed))
}

// errRelocateDestExists mirrors placement.ErrDestinationExists and
// subtitle.ErrDestinationExists: a subtitle already sitting at the
// destination is left alone rather than clobbered.
var errRelocateDestExists = errors.New("destination already exists")

func relocateFile(src, dst string) error {
	if src == dst {
		return nil
	}
	if info, statErr := os.Lstat(dst); statErr == nil {
		same, sameErr := sameFileRelocate(src, dst)
		if (sameErr != nil || !same) && info != nil {
			return errRelocateDestExists
		}
	}
	if err := os.Rename(src, dst); err != nil {
		if copyErr := fileutil.CopyFileVerified(src, dst); copyErr != nil {
			return fmt.Errorf("relocate file: %w", err)
		}
		if rmErr := os.Remove(src); rmErr != nil {
			return fmt.Errorf("remove source after relocate: %w", rmErr)
		}
	}
	return nil
}

func sameFileRelocate(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(infoA, infoB), nil
}
