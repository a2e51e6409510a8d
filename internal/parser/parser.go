package parser

import (
	"sort"
	"unicode/utf8"
)

// DefaultPlugins is the priority-ordered plugin chain used by New when no
// override is supplied.
func DefaultPlugins() []Plugin {
	return []Plugin{
		folderContextPlugin{},
		cleanerPlugin{},
		episodeStandardPlugin{},
		episodeJapanesePlugin{},
		episodeChinesePlugin{},
		seriesNamePlugin{},
	}
}

// Parser parses filenames into ParsedInfo using an ordered plugin chain.
type Parser struct {
	plugins []Plugin
}

// New builds a Parser. Passing no plugins uses DefaultPlugins; plugins are
// sorted ascending by Priority once here and never re-sorted per parse.
func New(plugins ...Plugin) *Parser {
	if len(plugins) == 0 {
		plugins = DefaultPlugins()
	}
	ordered := make([]Plugin, len(plugins))
	copy(ordered, plugins)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})
	return &Parser{plugins: ordered}
}

// Parse extracts ParsedInfo from filename, optionally using path for folder
// context. Parsing never fails; an unparseable file yields IsParsed=false.
func (p *Parser) Parse(filename, path string) ParsedInfo {
	ctx := newContext(filename, path)

	for _, plugin := range p.plugins {
		if !plugin.ShouldSkip(ctx) {
			plugin.Parse(ctx)
		}
	}

	return ParsedInfo{
		OriginalFilename: filename,
		SeriesName:       ctx.SeriesName,
		Season:           ctx.Season,
		Episode:          ctx.Episode,
		Year:             ctx.Year,
		MDBID:            ctx.MDBID,
		IsParsed:         ctx.Episode != 0 || ctx.SeriesName != "",
		Confidence:       confidence(ctx),
		MatchedPatterns:  ctx.MatchedPatterns,
	}
}

// FileRequest pairs a filename with its optional full path, for batch parsing.
type FileRequest struct {
	Filename string
	Filepath string
}

// ParseBatch parses each request and returns the results alongside the
// fraction that yielded IsParsed=true.
func (p *Parser) ParseBatch(files []FileRequest) ([]ParsedInfo, float64) {
	results := make([]ParsedInfo, len(files))
	success := 0
	for i, f := range files {
		results[i] = p.Parse(f.Filename, f.Filepath)
		if results[i].IsParsed {
			success++
		}
	}
	if len(files) == 0 {
		return results, 0
	}
	return results, float64(success) / float64(len(files))
}

// confidence scores a finished Context: +0.4 for a series name (plus +0.05
// when it's at least 4 characters), +0.2 for season, +0.3 for episode,
// +0.1 for year, clamped to 1.0.
func confidence(ctx *Context) float64 {
	var score float64
	if ctx.SeriesName != "" {
		score += 0.4
		if utf8.RuneCountInString(ctx.SeriesName) >= 4 {
			score += 0.05
		}
	}
	if ctx.Season != 0 {
		score += 0.2
	}
	if ctx.Episode != 0 {
		score += 0.3
	}
	if ctx.Year != 0 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
