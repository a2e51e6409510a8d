// Package mdb is an HTTP client for the upstream movie/TV metadata database
// used to identify series, seasons, and episodes. It supports both API-key
// and Bearer-token authentication, lazy per-call configuration, and a
// fuzzy-query fallback strategy for titles that defeat a literal search.
package mdb
