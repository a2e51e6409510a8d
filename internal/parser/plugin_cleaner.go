package parser

import (
	"regexp"
	"strings"
)

var (
	cleanerBracketPattern = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)
	cleanerReleaseTags    = regexp.MustCompile(
		`(?i)\b(1080p|720p|2160p|4k|hdr|bluray|blu-ray|web-?dl|webrip|hdtv|x264|x265|h\.?264|h\.?265|hevc|aac|flac|dts)\b`,
	)
)

// cleanerPlugin strips source/release-group bracket groups and common
// encode/source tags, populating CleanedFilename for downstream plugins
// that don't need path context (namely seriesNamePlugin).
type cleanerPlugin struct{}

func (cleanerPlugin) Priority() int { return 10 }
func (cleanerPlugin) Name() string  { return "cleaner" }

func (cleanerPlugin) ShouldSkip(ctx *Context) bool { return false }

func (p cleanerPlugin) Parse(ctx *Context) {
	cleaned := cleanerBracketPattern.ReplaceAllString(ctx.OriginalFilename, " ")
	cleaned = cleanerReleaseTags.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	ctx.CleanedFilename = strings.TrimSpace(cleaned)
	if ctx.CleanedFilename == "" {
		ctx.CleanedFilename = ctx.OriginalFilename
	}
}
