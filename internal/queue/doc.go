// Package queue persists Job and ScrapeTask rows in SQLite and drives their
// lifecycle through a single on-demand background worker.
//
// A Job represents a batch-scan request: walk scan_path, discover video
// files, and fan out one ScrapeTask per discovery. Job and ScrapeTask share
// the same status enum (pending, running, success, failed, cancelled); a
// Job's own status only reflects whether dispatch succeeded, never whether
// the scrape tasks it spawned have finished.
//
// Store opens the database, applies the base schema, and then runs a fixed
// list of ALTER TABLE ADD COLUMN statements that tolerate "duplicate column
// name" errors, so a database created by an older build of this binary picks
// up new columns without a destructive migration.
package queue
