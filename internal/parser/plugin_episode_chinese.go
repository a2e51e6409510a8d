package parser

import (
	"regexp"
	"strconv"
)

var (
	chineseEpisodeDigitPattern = regexp.MustCompile(`第(\d{1,3})[集话期]`)
	chineseEpisodeKanjiPattern = regexp.MustCompile(`第([一二三四五六七八九十百]+)[集话期]`)
)

// episodeChinesePlugin recognizes Chinese episode markers: 第N集/话/期, digit
// or kanji numeral.
type episodeChinesePlugin struct{}

func (episodeChinesePlugin) Priority() int { return 40 }
func (episodeChinesePlugin) Name() string  { return "episode_chinese" }

func (episodeChinesePlugin) ShouldSkip(ctx *Context) bool {
	return ctx.Episode != 0
}

func (p episodeChinesePlugin) Parse(ctx *Context) {
	if p.ShouldSkip(ctx) {
		return
	}

	if m := chineseEpisodeDigitPattern.FindStringSubmatch(ctx.OriginalFilename); m != nil {
		if ep, err := strconv.Atoi(m[1]); err == nil {
			ctx.Episode = ep
			ctx.mark(p.Name() + ":di_ji")
			return
		}
	}
	if m := chineseEpisodeKanjiPattern.FindStringSubmatch(ctx.OriginalFilename); m != nil {
		if ep, ok := kanjiNumeralToInt(m[1]); ok {
			ctx.Episode = ep
			ctx.mark(p.Name() + ":di_ji_kanji")
		}
	}
}
