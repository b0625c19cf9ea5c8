package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the rowguard store (SQLite).
var Migrations = migrate.NewGroup("rowguard")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_decisions",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS rowguard_decisions (
    id              TEXT PRIMARY KEY,
    principals      TEXT NOT NULL DEFAULT '[]',
    permission      TEXT NOT NULL,
    resource        TEXT NOT NULL DEFAULT '',
    decision        TEXT NOT NULL,
    reason          TEXT NOT NULL DEFAULT '',
    matched_index   INTEGER,
    eval_time_ns    INTEGER NOT NULL DEFAULT 0,
    request_ip      TEXT NOT NULL DEFAULT '',
    metadata        TEXT NOT NULL DEFAULT '{}',
    created_at      TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_rowguard_decisions_created ON rowguard_decisions (created_at);
CREATE INDEX IF NOT EXISTS idx_rowguard_decisions_permission ON rowguard_decisions (permission, created_at);
CREATE INDEX IF NOT EXISTS idx_rowguard_decisions_resource ON rowguard_decisions (resource, created_at);
CREATE INDEX IF NOT EXISTS idx_rowguard_decisions_decision ON rowguard_decisions (decision, created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS rowguard_decisions`)
				return err
			},
		},
	)
}
