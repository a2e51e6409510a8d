package parser_test

import (
	"testing"

	"tvscrape/internal/parser"
)

func TestParseStandardSeasonEpisode(t *testing.T) {
	p := parser.New()
	info := p.Parse("Show Name - S01E03 - Pilot.mkv", "")

	if info.SeriesName != "Show Name" {
		t.Fatalf("series name = %q, want %q", info.SeriesName, "Show Name")
	}
	if info.Season != 1 {
		t.Fatalf("season = %d, want 1", info.Season)
	}
	if info.Episode != 3 {
		t.Fatalf("episode = %d, want 3", info.Episode)
	}
	if info.Confidence < 0.9 {
		t.Fatalf("confidence = %v, want >= 0.9", info.Confidence)
	}
}

func TestParseNeverFailsAndConfidenceInRange(t *testing.T) {
	inputs := []string{
		"",
		"....",
		"random_file_no_markers",
		"[Group] Show - 01 [1080p][tmdbid-1].mkv",
		"完全に意味不明なファイル名.mkv",
	}
	p := parser.New()
	for _, in := range inputs {
		info := p.Parse(in, "")
		if info.Confidence < 0 || info.Confidence > 1 {
			t.Fatalf("parse(%q) confidence out of range: %v", in, info.Confidence)
		}
	}
}

func TestParseExtractsSeasonEpisodeFromSxxEyy(t *testing.T) {
	p := parser.New()
	info := p.Parse("Some.Show.S02E07.720p.mkv", "")
	if info.Season != 2 || info.Episode != 7 {
		t.Fatalf("got season=%d episode=%d, want 2/7", info.Season, info.Episode)
	}
}

func TestParseExtractsMDBIDFromParentFolder(t *testing.T) {
	p := parser.New()
	path := "/library/Show Name (2020) [tmdbid-12345]/Season 1/Show Name - S01E01.mkv"
	info := p.Parse("Show Name - S01E01.mkv", path)
	if info.MDBID != 12345 {
		t.Fatalf("mdb_id = %d, want 12345", info.MDBID)
	}
	if info.Year != 2020 {
		t.Fatalf("year = %d, want 2020", info.Year)
	}
	if info.Season != 1 {
		t.Fatalf("season = %d, want 1", info.Season)
	}
}

func TestParseRejectsOutOfRangeFolderYear(t *testing.T) {
	p := parser.New()
	path := "/library/Show Name [2099]/Show Name - S01E01.mkv"
	info := p.Parse("Show Name - S01E01.mkv", path)
	if info.Year != 0 {
		t.Fatalf("year = %d, want 0 (out of [1950,2030] range)", info.Year)
	}
}

func TestParseRejectsDirectMountChildAsSeriesFolder(t *testing.T) {
	p := parser.New()
	path := "/media/Show Name - S01E01.mkv"
	info := p.Parse("Show Name - S01E01.mkv", path)
	// "/media" is a direct child of root; folder context must not treat it
	// as a series folder (no MDB id / year leaks from a mount name).
	if info.MDBID != 0 {
		t.Fatalf("mdb_id = %d, want 0 for root-mount-direct file", info.MDBID)
	}
}

func TestParseSeasonFolderWithGrandparentSeriesFolder(t *testing.T) {
	p := parser.New()
	path := "/library/Arrival Series (2016) [tmdbid-999]/Season 2/Arrival Series - S02E05.mkv"
	info := p.Parse("Arrival Series - S02E05.mkv", path)
	if info.Season != 2 {
		t.Fatalf("season = %d, want 2", info.Season)
	}
	if info.MDBID != 999 {
		t.Fatalf("mdb_id = %d, want 999", info.MDBID)
	}
}

func TestParseJapaneseDaiWaMarker(t *testing.T) {
	p := parser.New()
	info := p.Parse("〇〇〇する七人の孕女 第1話.mp4", "")
	if info.Episode != 1 {
		t.Fatalf("episode = %d, want 1", info.Episode)
	}
}

func TestParseBatchSuccessRate(t *testing.T) {
	p := parser.New()
	results, rate := p.ParseBatch([]parser.FileRequest{
		{Filename: "Show - S01E01.mkv"},
		{Filename: "...."},
	})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if rate <= 0 || rate >= 1 {
		t.Fatalf("success rate = %v, want between 0 and 1 exclusive", rate)
	}
}

func TestParseBatchEmptyYieldsZeroRate(t *testing.T) {
	p := parser.New()
	results, rate := p.ParseBatch(nil)
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
	if rate != 0 {
		t.Fatalf("rate = %v, want 0", rate)
	}
}
