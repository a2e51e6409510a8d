// Package conflict adapts an external media-library server (Jellyfin) into
// a conflict oracle the scrape orchestrator consults before placement.
//
// The oracle answers one question: does this library already have
// (series_name, mdb_id, season, episode)? It is enabled only when
// cfg.Jellyfin.Enabled is set; otherwise NewConfiguredService returns a
// no-op oracle that always reports NoConflict, so the orchestrator never
// needs to branch on whether the feature is configured.
package conflict
