package sidecar_test

import (
	"strings"
	"testing"

	"tvscrape/internal/mdb"
	"tvscrape/internal/sidecar"
)

func TestGenerateTVShowNFOIncludesTitleAndUniqueID(t *testing.T) {
	series := mdb.Series{ID: 10, Name: "Show Name", Overview: "about", Genres: []string{"Drama"}}
	doc, err := sidecar.GenerateTVShowNFO(series)
	if err != nil {
		t.Fatalf("GenerateTVShowNFO: %v", err)
	}
	s := string(doc)
	if !strings.Contains(s, "<tvshow>") {
		t.Fatalf("missing <tvshow> root: %s", s)
	}
	if !strings.Contains(s, "<title>Show Name</title>") {
		t.Fatalf("missing title: %s", s)
	}
	if !strings.Contains(s, `type="tmdb"`) || !strings.Contains(s, ">10<") {
		t.Fatalf("missing tmdb uniqueid: %s", s)
	}
}

func TestGenerateSeasonNFOFallsBackToOrdinalTitleWhenUnnamed(t *testing.T) {
	series := mdb.Series{ID: 10, Seasons: []mdb.Season{{SeasonNumber: 2}}}
	doc, err := sidecar.GenerateSeasonNFO(series, 2)
	if err != nil {
		t.Fatalf("GenerateSeasonNFO: %v", err)
	}
	if !strings.Contains(string(doc), "<title>Season 2</title>") {
		t.Fatalf("expected fallback ordinal season title, got %s", doc)
	}
}

func TestGenerateEpisodeNFOUsesSeasonDetailEpisode(t *testing.T) {
	series := mdb.Series{ID: 10, Name: "Show Name"}
	seasonDetail := &mdb.Season{
		SeasonNumber: 1,
		Episodes: []mdb.Episode{
			{EpisodeNumber: 1, Name: "Pilot"},
			{EpisodeNumber: 2, Name: "Name", Overview: "plot"},
		},
	}
	doc, err := sidecar.GenerateEpisodeNFO(series, 1, 2, seasonDetail)
	if err != nil {
		t.Fatalf("GenerateEpisodeNFO: %v", err)
	}
	s := string(doc)
	if !strings.Contains(s, "<title>Name</title>") {
		t.Fatalf("expected matched episode title, got %s", s)
	}
	if !strings.Contains(s, "<showtitle>Show Name</showtitle>") {
		t.Fatalf("expected showtitle, got %s", s)
	}
	if !strings.Contains(s, "<season>1</season>") || !strings.Contains(s, "<episode>2</episode>") {
		t.Fatalf("expected season/episode numbers, got %s", s)
	}
}

func TestGenerateEpisodeNFOWithoutSeasonDetailUsesOrdinalTitle(t *testing.T) {
	series := mdb.Series{ID: 10, Name: "Show Name"}
	doc, err := sidecar.GenerateEpisodeNFO(series, 1, 5, nil)
	if err != nil {
		t.Fatalf("GenerateEpisodeNFO: %v", err)
	}
	if !strings.Contains(string(doc), "<title>Episode 5</title>") {
		t.Fatalf("expected fallback ordinal episode title, got %s", doc)
	}
}
