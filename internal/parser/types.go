package parser

import "golang.org/x/text/width"

// ParsedInfo is the output of a filename parse.
type ParsedInfo struct {
	OriginalFilename string
	SeriesName       string
	Season           int
	Episode          int
	Year             int
	MDBID            int
	IsParsed         bool
	Confidence       float64
	MatchedPatterns  []string
}

// HasSeason reports whether a season number was extracted.
func (p ParsedInfo) HasSeason() bool { return p.Season > 0 }

// HasEpisode reports whether an episode number was extracted.
func (p ParsedInfo) HasEpisode() bool { return p.Episode > 0 }

// HasYear reports whether a valid year was extracted.
func (p ParsedInfo) HasYear() bool { return p.Year > 0 }

// HasMDBID reports whether a TMDB/MDB id was extracted from the path.
func (p ParsedInfo) HasMDBID() bool { return p.MDBID > 0 }

// Context is the mutable record threaded through the plugin chain. Plugins
// read prior MatchedPatterns to decide what, if anything, to skip.
type Context struct {
	OriginalFilename string
	Filepath         string

	// CleanedFilename is the release-noise-stripped form, populated by the
	// Cleaner plugin for use by later filename-only plugins.
	CleanedFilename string

	SeriesName string
	Season     int
	Episode    int
	Year       int
	MDBID      int

	MatchedPatterns []string
}

func newContext(filename, filepath string) *Context {
	// Anime release groups commonly use full-width digits/punctuation
	// (０-９ etc.) in episode markers; narrow them so every downstream
	// regex (which only matches ASCII \d) sees plain digits. width.Narrow
	// is a 1:1 rune substitution, so byte offsets used elsewhere (e.g.
	// earliestMarkerLocations) stay meaningful.
	normalized := width.Narrow.String(filename)
	return &Context{
		OriginalFilename: normalized,
		Filepath:         filepath,
		CleanedFilename:  normalized,
	}
}

func (c *Context) mark(pattern string) {
	c.MatchedPatterns = append(c.MatchedPatterns, pattern)
}
