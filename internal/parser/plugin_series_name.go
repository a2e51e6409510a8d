package parser

import (
	"regexp"
	"strings"
)

var (
	seriesNameYearPattern  = regexp.MustCompile(`(?:19|20)\d{2}`)
	seriesNameNoisePattern = regexp.MustCompile(`(?i)\bthe animation\b`)
	seriesNameOVAPattern   = regexp.MustCompile(`(?i)^(ova|oad|ona)\b[\s._-]*`)
	seriesNameBracketLeft  = regexp.MustCompile(`\[[^\]]*$|\([^)]*$`)
)

// seriesNamePlugin derives a series name from the cleaned filename when
// folderContextPlugin didn't already supply one: it locates the earliest
// episode-marker or year position and takes everything before it.
type seriesNamePlugin struct{}

func (seriesNamePlugin) Priority() int { return 50 }
func (seriesNamePlugin) Name() string  { return "series_name" }

func (seriesNamePlugin) ShouldSkip(ctx *Context) bool {
	return ctx.SeriesName != ""
}

func (p seriesNamePlugin) Parse(ctx *Context) {
	if p.ShouldSkip(ctx) {
		return
	}

	name := ctx.CleanedFilename
	cut := len(name)
	for _, loc := range earliestMarkerLocations(name) {
		if loc < cut {
			cut = loc
		}
	}
	name = name[:cut]

	name = seriesNameNoisePattern.ReplaceAllString(name, " ")
	name = seriesNameOVAPattern.ReplaceAllString(name, "")
	name = seriesNameBracketLeft.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.Trim(name, " -_.")

	if len(name) >= 2 {
		ctx.SeriesName = name
		ctx.mark(p.Name() + ":series_name")
	}
}

// earliestMarkerLocations returns the start byte offset of every
// episode-marker or year match found in name, used to find the boundary
// before which the series title lives.
func earliestMarkerLocations(name string) []int {
	var locs []int
	for _, sp := range standardPatterns {
		if loc := sp.pattern.FindStringIndex(name); loc != nil {
			locs = append(locs, loc[0])
		}
	}
	if loc := japaneseEpisodeDigitPattern.FindStringIndex(name); loc != nil {
		locs = append(locs, loc[0])
	}
	if loc := japaneseEpisodeKanjiPattern.FindStringIndex(name); loc != nil {
		locs = append(locs, loc[0])
	}
	if loc := chineseEpisodeDigitPattern.FindStringIndex(name); loc != nil {
		locs = append(locs, loc[0])
	}
	if loc := chineseEpisodeKanjiPattern.FindStringIndex(name); loc != nil {
		locs = append(locs, loc[0])
	}
	if loc := seriesNameYearPattern.FindStringIndex(name); loc != nil {
		locs = append(locs, loc[0])
	}
	return locs
}
