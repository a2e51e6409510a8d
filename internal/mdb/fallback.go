package mdb

import (
	"regexp"
	"strings"
)

var (
	censorGlyphPattern  = regexp.MustCompile(`[〇○]+`)
	bracketContentRe    = regexp.MustCompile(`[\[【（(][^\]】）)]*[\]】）)]`)
	leadingCensorHira   = regexp.MustCompile(`^[〇○]+[ぁ-ん]*`)
	volumeMarkerPattern = regexp.MustCompile(`(下[巻卷]|上[巻卷]|前[編篇]|後[編篇]|完結[編篇]|第[一二三四五六七八九十百千0-9]+[巻話編章]|[Vv]ol\.?\s*[0-9]+)`)
	ovaPrefixPattern    = regexp.MustCompile(`(?i)^(?:OVA|OAD|ONA)\s+`)
	trailingDigitsRe    = regexp.MustCompile(`\s+[0-9]+\s*$`)
	fallbackWhitespace  = regexp.MustCompile(`\s+`)
)

// generateFallbackQueries builds candidate search strings for a query that
// failed to return any results. It mirrors nine distinct strategies for
// stripping the censoring glyphs, bracketed noise, and volume/OVA markers
// common in heavily obfuscated titles, trying each in a fixed order.
// Candidates are deduplicated against each other and the original query, and
// any candidate shorter than two characters is dropped.
func generateFallbackQueries(query string) []string {
	var candidates []string
	seen := map[string]struct{}{query: {}}

	add := func(q string) {
		q = strings.TrimSpace(fallbackWhitespace.ReplaceAllString(q, " "))
		if q == "" {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		if len([]rune(q)) < 2 {
			return
		}
		candidates = append(candidates, q)
		seen[q] = struct{}{}
	}

	// 1: strip censoring glyphs 〇/○.
	q1 := censorGlyphPattern.ReplaceAllString(query, "")
	add(q1)

	// 2: strip bracket/paren contents.
	q2 := bracketContentRe.ReplaceAllString(query, " ")
	add(q2)

	// 3: both 1 and 2.
	q3 := censorGlyphPattern.ReplaceAllString(q2, "")
	add(q3)

	// 4: strip a leading censor-glyph run plus any hiragana immediately after it.
	q4 := leadingCensorHira.ReplaceAllString(query, "")
	add(q4)

	// 5: strip volume/episode markers (下巻, 前編, 第N巻, Vol.N, ...).
	q5 := strings.TrimSpace(volumeMarkerPattern.ReplaceAllString(query, ""))
	add(q5)

	// 6: combined — 5, then censor glyphs, then brackets.
	q6 := censorGlyphPattern.ReplaceAllString(q5, "")
	q6 = bracketContentRe.ReplaceAllString(q6, " ")
	q6 = strings.TrimSpace(fallbackWhitespace.ReplaceAllString(q6, " "))
	add(q6)

	// 7: strip a leading OVA/OAD/ONA prefix.
	q7 := ovaPrefixPattern.ReplaceAllString(query, "")
	add(q7)

	// 8: strip trailing episode digits.
	q8 := strings.TrimSpace(trailingDigitsRe.ReplaceAllString(query, ""))
	add(q8)

	// 9: both 7 and 8.
	q9 := ovaPrefixPattern.ReplaceAllString(q8, "")
	add(q9)

	return candidates
}
