package parser

import (
	"regexp"
	"strconv"
)

type standardPatternKind int

const (
	kindSeasonEpisode standardPatternKind = iota
	kindEpisodeOnly
)

type standardPattern struct {
	pattern *regexp.Regexp
	kind    standardPatternKind
}

var standardPatterns = []standardPattern{
	{regexp.MustCompile(`(?i)[.\s_-]?s(\d{1,2})[.\s_-]?e(\d{1,3})`), kindSeasonEpisode},
	{regexp.MustCompile(`(?i)[.\s_-]e[pP]?(\d{1,3})(?:[.\s_-]|$)`), kindEpisodeOnly},
	{regexp.MustCompile(`\[(\d{1,3})\]`), kindEpisodeOnly},
	{regexp.MustCompile(`(?i)[.\s_-](\d{1,3})[.\s_-]?(?:\[|$|\.(?:mp4|mkv|avi))`), kindEpisodeOnly},
}

// episodeStandardPlugin matches the common SxxEyy / EPnn / trailing-number
// episode conventions directly against the filename; it never consults the
// path.
type episodeStandardPlugin struct{}

func (episodeStandardPlugin) Priority() int { return 20 }
func (episodeStandardPlugin) Name() string  { return "episode_standard" }

func (episodeStandardPlugin) ShouldSkip(ctx *Context) bool {
	return ctx.Episode != 0
}

func (p episodeStandardPlugin) Parse(ctx *Context) {
	if p.ShouldSkip(ctx) {
		return
	}

	for _, sp := range standardPatterns {
		m := sp.pattern.FindStringSubmatch(ctx.OriginalFilename)
		if m == nil {
			continue
		}
		switch sp.kind {
		case kindSeasonEpisode:
			season, errS := strconv.Atoi(m[1])
			episode, errE := strconv.Atoi(m[2])
			if errS != nil || errE != nil {
				continue
			}
			ctx.Season = season
			ctx.Episode = episode
		case kindEpisodeOnly:
			episode, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			ctx.Episode = episode
		}
		if ctx.Episode != 0 {
			ctx.mark(p.Name() + ":" + patternTag(sp.kind))
			return
		}
	}
}

func patternTag(kind standardPatternKind) string {
	if kind == kindSeasonEpisode {
		return "season_episode"
	}
	return "episode_only"
}
