// Package sidecar renders Kodi/Jellyfin-style NFO XML documents describing
// a series, a season, or a single episode. Every function here is a pure
// transformation from mdb records to an XML byte slice; deciding whether,
// when, and where to write the result is the orchestrator's job.
package sidecar
