package subtitle

import (
	"path/filepath"
	"regexp"
	"strings"
)

// languageMappings recognizes the dot-part and bracket tags release groups
// use to mark subtitle language, including common CJK-script spellings.
var languageMappings = map[string]Language{
	"chs": ChineseSimp, "sc": ChineseSimp, "zh": ChineseSimp, "chi": ChineseSimp,
	"zho": ChineseSimp, "zh-cn": ChineseSimp, "zh-hans": ChineseSimp,
	"chinese": ChineseSimp, "简体": ChineseSimp, "简中": ChineseSimp,

	"cht": ChineseTrad, "tc": ChineseTrad, "zh-tw": ChineseTrad, "zh-hk": ChineseTrad,
	"zh-hant": ChineseTrad, "繁体": ChineseTrad, "繁中": ChineseTrad,

	"eng": English, "en": English, "english": English,

	"jpn": Japanese, "ja": Japanese, "jap": Japanese, "japanese": Japanese, "日语": Japanese,

	"kor": Korean, "ko": Korean, "korean": Korean, "韩语": Korean,
}

// descriptorTags are non-language segments that may trail a language tag in
// a subtitle filename, e.g. "S01E01.chs.assfonts.ass".
var descriptorTags = map[string]bool{
	"assfonts": true, "fonts": true, "hi": true, "forced": true, "sdh": true,
	"cc": true, "default": true, "full": true, "signs": true, "songs": true,
	"commentary": true,
}

var (
	bracketTagPattern = regexp.MustCompile(`\[([^\]]+)\]`)
	parenTagPattern   = regexp.MustCompile(`\(([^)]+)\)`)
)

// extractLanguage scans a subtitle filename's dot-separated parts from the
// right, skipping descriptor tags, and returns the first recognized
// language tag it finds. Falls back to scanning bracket/paren tags. Returns
// LanguageNone when nothing matches.
func extractLanguage(filename string) Language {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(stem, ".")

	for i := len(parts) - 1; i >= 0; i-- {
		tag := strings.ToLower(parts[i])
		if lang, ok := languageMappings[tag]; ok {
			return lang
		}
		if !descriptorTags[tag] {
			break
		}
	}

	for _, pattern := range []*regexp.Regexp{bracketTagPattern, parenTagPattern} {
		for _, match := range pattern.FindAllStringSubmatch(stem, -1) {
			if lang, ok := languageMappings[strings.ToLower(match[1])]; ok {
				return lang
			}
		}
	}

	return LanguageNone
}

// baseName strips the extension, then trailing descriptor tags and language
// codes from a subtitle filename's dot-parts, down to the content
// identifier used for video matching (e.g. "S01E01.chs.assfonts" -> "S01E01").
func baseName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(stem, ".")

	for len(parts) > 1 {
		tag := strings.ToLower(parts[len(parts)-1])
		_, isLanguage := languageMappings[tag]
		if isLanguage || descriptorTags[tag] {
			parts = parts[:len(parts)-1]
			continue
		}
		break
	}
	return strings.Join(parts, ".")
}
