// Package subtitle discovers subtitle sidecars alongside video files,
// detects their language from filename conventions, matches them to the
// video they belong to, and renames/relocates matched subtitles alongside
// their video's final name.
package subtitle
