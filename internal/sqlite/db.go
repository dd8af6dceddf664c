package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the projects table if it doesn't exist. Records are
// populated by an external pipeline; this only bootstraps the schema for
// dev and test databases.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS projects (
    project_id TEXT PRIMARY KEY,
    manual_title TEXT NOT NULL,
    manual_summary TEXT NOT NULL,
    author_id TEXT NOT NULL,
    author_name TEXT,
    main_domain TEXT,
    create_tm TIMESTAMP,
    project_forked_acc_cnt INTEGER NOT NULL DEFAULT 0,
    project_opened_acc_cnt INTEGER NOT NULL DEFAULT 0,
    category_l1 TEXT,
    category_l2 TEXT,
    manual_score REAL NOT NULL DEFAULT 0,
    manual_score_updated REAL NOT NULL DEFAULT 0,
    screenshot_url TEXT,
    description TEXT,
    project_visibility TEXT NOT NULL DEFAULT 'public'
        CHECK(project_visibility IN ('public', 'private'))
);
CREATE INDEX IF NOT EXISTS idx_projects_category ON projects(category_l1, category_l2);
CREATE INDEX IF NOT EXISTS idx_projects_score_updated ON projects(manual_score_updated);
CREATE INDEX IF NOT EXISTS idx_projects_author ON projects(author_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
