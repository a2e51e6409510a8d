package parser

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	tmdbIDPattern       = regexp.MustCompile(`(?i)\[tmdb(?:id)?[-:](\d+)\]`)
	folderYearPattern   = regexp.MustCompile(`[\[(]((?:19|20)\d{2})[\])]`)
	seasonFolderPattern = regexp.MustCompile(`(?i)^season\s*\d+$|^s\d{1,2}$`)
	seasonNumberPattern = regexp.MustCompile(`(?i)season\s*(\d+)|^s(\d{1,2})$`)

	bracketCleanPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\[tmdb(?:id)?[-:]\d+\]`),
		regexp.MustCompile(`[\[(](?:19|20)\d{2}[\])]`),
		regexp.MustCompile(`\[[^\]]*\]`),
		regexp.MustCompile(`\([^)]*\)`),
	}

	// volumeSplitPattern finds a leading-whitespace volume/subtitle marker;
	// everything from the match onward is treated as a subtitle, not the
	// series name.
	volumeSplitPattern = regexp.MustCompile(
		`\s+(下[巻卷]|上[巻卷]|前[編篇]|後[編篇]|完結[編篇]` +
			`|第[一二三四五六七八九十百千\d]+[巻話編章]` +
			`|[Vv]ol\.?\s*\d+)`,
	)

	volumeNumberPattern  = regexp.MustCompile(`[Vv]ol\.?\s*(\d+)`)
	volumeKanjiPattern   = regexp.MustCompile(`第(\d+)[巻話編章]`)
	trailingEpisodeMatch = regexp.MustCompile(`(?:\s+[＃#♯]\s*|\s+)(\d{1,3})\s*$`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
)

var volumeFixedEpisode = map[string]int{
	"上": 1, "前": 1,
	"下": 2, "後": 2,
}

// folderContextPlugin extracts TMDB ID, year, series name, and season from
// the enclosing directory structure: `<Series> (YYYY) [tmdbid-NNN]/Season N/file`.
type folderContextPlugin struct{}

func (folderContextPlugin) Priority() int { return 5 }
func (folderContextPlugin) Name() string  { return "folder_context" }

func (folderContextPlugin) ShouldSkip(ctx *Context) bool {
	return ctx.Filepath == ""
}

func (p folderContextPlugin) Parse(ctx *Context) {
	if ctx.Filepath == "" {
		return
	}

	folder, seasonFromPath, ok := detectSeriesFolder(ctx.Filepath)
	if !ok {
		return
	}
	folderName := filepath.Base(folder)

	if seasonFromPath > 0 && ctx.Season == 0 {
		ctx.Season = seasonFromPath
		ctx.mark(p.Name() + ":season")
	}

	if m := tmdbIDPattern.FindStringSubmatch(folderName); m != nil && ctx.MDBID == 0 {
		if id, err := strconv.Atoi(m[1]); err == nil {
			ctx.MDBID = id
			ctx.mark(p.Name() + ":tmdb_id")
		}
	}

	if ctx.Year == 0 {
		if m := folderYearPattern.FindStringSubmatch(folderName); m != nil {
			if year, err := strconv.Atoi(m[1]); err == nil && year >= 1950 && year <= 2030 {
				ctx.Year = year
				ctx.mark(p.Name() + ":year")
			}
		}
	}

	if ctx.SeriesName == "" {
		name := folderName
		for _, pattern := range bracketCleanPatterns {
			name = pattern.ReplaceAllString(name, "")
		}

		if loc := volumeSplitPattern.FindStringSubmatchIndex(name); loc != nil {
			marker := name[loc[2]:loc[3]]
			if ctx.Episode == 0 {
				if ep, ok := episodeFromVolumeMarker(marker); ok {
					ctx.Episode = ep
					ctx.mark(p.Name() + ":episode")
				}
			}
			name = name[:loc[0]]
		}
		name = whitespaceRun.ReplaceAllString(name, " ")
		name = strings.Trim(name, " -_.")

		if m := trailingEpisodeMatch.FindStringSubmatchIndex(name); m != nil {
			epNum, err := strconv.Atoi(name[m[2]:m[3]])
			name = strings.Trim(name[:m[0]], " -_.")
			if err == nil && ctx.Episode == 0 {
				ctx.Episode = epNum
				ctx.mark(p.Name() + ":episode")
			}
		}

		if utf8.RuneCountInString(name) >= 2 {
			ctx.SeriesName = name
			ctx.mark(p.Name() + ":series_name")
		}
	}
}

func episodeFromVolumeMarker(text string) (int, bool) {
	if m := volumeNumberPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := volumeKanjiPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	for prefix, ep := range volumeFixedEpisode {
		if strings.HasPrefix(text, prefix) {
			return ep, true
		}
	}
	return 0, false
}

// detectSeriesFolder walks from filepath's parent upward to find the series
// folder and, if the immediate parent is a "Season N" folder, its season
// number. Returns ok=false when no usable folder exists, including when the
// candidate folder would be a filesystem-root mount point itself.
func detectSeriesFolder(path string) (folder string, season int, ok bool) {
	clean := filepath.Clean(path)
	parent := filepath.Dir(clean)
	parentBase := filepath.Base(parent)

	if seasonFolderPattern.MatchString(parentBase) {
		season = extractSeasonNumber(parentBase)
		candidate := filepath.Dir(parent)
		if isRootPath(candidate) || isRootPath(filepath.Dir(candidate)) {
			return "", 0, false
		}
		return candidate, season, true
	}

	if isRootPath(filepath.Dir(parent)) {
		return "", 0, false
	}
	return parent, 0, true
}

func extractSeasonNumber(folderName string) int {
	m := seasonNumberPattern.FindStringSubmatch(folderName)
	if m == nil {
		return 0
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		if n, err := strconv.Atoi(group); err == nil {
			return n
		}
	}
	return 0
}

func isRootPath(p string) bool {
	return filepath.Dir(p) == p
}
