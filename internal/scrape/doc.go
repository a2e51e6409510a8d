// Package scrape is the per-file orchestrator: it composes the filename
// parser, the MDB client, the conflict oracle, the sidecar writer, the
// placement engine, the artwork fetcher, and the subtitle matcher into a
// single sequential state machine, producing a terminal ScrapeResult and an
// ordered step log. RunJob and RunTask satisfy the queue package's
// JobExecutor/TaskExecutor function types so the background worker can
// drive both without depending on this package.
package scrape
