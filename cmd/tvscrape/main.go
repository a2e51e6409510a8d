// Command tvscrape identifies TV episode files, fetches their metadata, and
// organizes them into a media library. It operates directly against the
// SQLite-backed job queue: no separate daemon process or socket is
// required, since a worker can simply be run in the foreground alongside
// manual commands against the same database file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
