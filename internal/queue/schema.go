package queue

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var baseSchema string

// addedColumns lists ALTER TABLE ADD COLUMN statements applied after the
// base schema, so that databases created by an older build of this binary
// gain new columns without a destructive migration. "duplicate column
// name" errors are expected and ignored on every open after the column
// first lands.
var addedColumns = []string{
	"ALTER TABLE jobs ADD COLUMN metadata_dir TEXT NOT NULL DEFAULT ''",
	"ALTER TABLE jobs ADD COLUMN source TEXT NOT NULL DEFAULT 'manual'",
	"ALTER TABLE jobs ADD COLUMN advanced_settings TEXT",
	"ALTER TABLE scrape_tasks ADD COLUMN result_status TEXT",
	"ALTER TABLE scrape_tasks ADD COLUMN dest_path TEXT",
}

func (s *Store) initSchema(ctx context.Context) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := strings.Split(baseSchema, ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create base schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}

	for _, stmt := range addedColumns {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("apply schema migration %q: %w", stmt, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column name")
}
