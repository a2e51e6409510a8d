package placement

import (
	"fmt"
	"regexp"
	"strconv"
)

// Variables holds the substitution values available to a naming template.
// Season and Episode support printf-style zero-padding via {season:02d}.
type Variables struct {
	Title        string
	OriginalTitle string
	Season        int
	Episode       int
	EpisodeTitle  string
	Year          int
	MDBID         int
	AirDate       string
}

var templateTokenPattern = regexp.MustCompile(`\{(\w+)(?::0(\d+)d)?\}`)

// Render substitutes every {variable} or {variable:0Nd} token in tmpl with
// its value from vars. Unknown tokens are left untouched.
func Render(tmpl string, vars Variables) string {
	return templateTokenPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		groups := templateTokenPattern.FindStringSubmatch(match)
		name, width := groups[1], groups[2]
		return renderToken(name, width, vars)
	})
}

func renderToken(name, width string, vars Variables) string {
	switch name {
	case "title":
		return vars.Title
	case "original_title":
		return vars.OriginalTitle
	case "episode_title":
		return vars.EpisodeTitle
	case "air_date":
		return vars.AirDate
	case "year":
		return formatIntField(vars.Year, width)
	case "tmdb_id":
		return formatIntField(vars.MDBID, width)
	case "season":
		return formatIntField(vars.Season, width)
	case "episode":
		return formatIntField(vars.Episode, width)
	default:
		return "{" + name + "}"
	}
}

func formatIntField(value int, width string) string {
	if value == 0 {
		return ""
	}
	if width == "" {
		return strconv.Itoa(value)
	}
	n, err := strconv.Atoi(width)
	if err != nil {
		return strconv.Itoa(value)
	}
	return fmt.Sprintf("%0*d", n, value)
}

// Default destination templates, per the naming contract.
const (
	DefaultSeriesFolderTemplate = "{title} ({year}) [tmdbid-{tmdb_id}]"
	DefaultSeasonFolderTemplate = "Season {season}"
	DefaultEpisodeFileTemplate  = "{title} - S{season:02d}E{episode:02d} - {episode_title}"
)
