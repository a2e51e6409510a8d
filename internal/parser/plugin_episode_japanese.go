package parser

import (
	"regexp"
	"strconv"
)

var (
	japaneseEpisodeDigitPattern = regexp.MustCompile(`第(\d{1,3})話`)
	japaneseEpisodeKanjiPattern = regexp.MustCompile(`第([一二三四五六七八九十百]+)話`)
	japaneseSonoPattern         = regexp.MustCompile(`其の(\d{1,3})`)
	japaneseHashPattern         = regexp.MustCompile(`#(\d{1,3})`)
)

var kanjiDigits = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9,
}

// kanjiNumeralToInt converts a simple kanji numeral (1-99, using 十 as the
// tens marker) to an int. Returns ok=false for anything it doesn't recognize.
func kanjiNumeralToInt(s string) (int, bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0, false
	}

	tenIdx := -1
	for i, r := range runes {
		if r == '十' {
			tenIdx = i
			break
		}
	}
	if tenIdx < 0 {
		total := 0
		for _, r := range runes {
			d, ok := kanjiDigits[r]
			if !ok {
				return 0, false
			}
			total = total*10 + d
		}
		return total, true
	}

	tens := 1
	if tenIdx > 0 {
		d, ok := kanjiDigits[runes[0]]
		if !ok {
			return 0, false
		}
		tens = d
	}
	ones := 0
	if tenIdx < len(runes)-1 {
		d, ok := kanjiDigits[runes[tenIdx+1]]
		if !ok {
			return 0, false
		}
		ones = d
	}
	return tens*10 + ones, true
}

// episodeJapanesePlugin recognizes Japanese episode markers: 第N話 (digit or
// kanji numeral), 其のN, and a bare #N hash marker.
type episodeJapanesePlugin struct{}

func (episodeJapanesePlugin) Priority() int { return 30 }
func (episodeJapanesePlugin) Name() string  { return "episode_japanese" }

func (episodeJapanesePlugin) ShouldSkip(ctx *Context) bool {
	return ctx.Episode != 0
}

func (p episodeJapanesePlugin) Parse(ctx *Context) {
	if p.ShouldSkip(ctx) {
		return
	}

	if m := japaneseEpisodeDigitPattern.FindStringSubmatch(ctx.OriginalFilename); m != nil {
		if ep, err := strconv.Atoi(m[1]); err == nil {
			ctx.Episode = ep
			ctx.mark(p.Name() + ":dai_wa")
			return
		}
	}
	if m := japaneseEpisodeKanjiPattern.FindStringSubmatch(ctx.OriginalFilename); m != nil {
		if ep, ok := kanjiNumeralToInt(m[1]); ok {
			ctx.Episode = ep
			ctx.mark(p.Name() + ":dai_wa_kanji")
			return
		}
	}
	if m := japaneseSonoPattern.FindStringSubmatch(ctx.OriginalFilename); m != nil {
		if ep, err := strconv.Atoi(m[1]); err == nil {
			ctx.Episode = ep
			ctx.mark(p.Name() + ":sono")
			return
		}
	}
	if m := japaneseHashPattern.FindStringSubmatch(ctx.OriginalFilename); m != nil {
		if ep, err := strconv.Atoi(m[1]); err == nil {
			ctx.Episode = ep
			ctx.mark(p.Name() + ":hash")
		}
	}
}
