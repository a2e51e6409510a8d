// Package notifications delivers job and scrape lifecycle events via a
// pluggable notifier.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled or unconfigured. Enumerated event types cover job and scrape
// milestones so the queue worker and CLI can emit consistent, user-friendly
// messages without duplicating HTTP glue.
//
// Extend this package if you need alternative transports; all caller code
// depends only on the simple Service interface.
package notifications
