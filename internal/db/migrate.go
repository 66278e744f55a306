package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS estimator_profiles (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		is_active    INTEGER NOT NULL DEFAULT 1,
		target_dollars_per_hour    REAL,
		target_estimates_per_week  INTEGER,
		target_max_revision_rate   REAL,
		target_max_cycle_days      REAL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS estimates (
		id              TEXT PRIMARY KEY,
		file_number     TEXT NOT NULL,
		claim_number    TEXT NOT NULL DEFAULT '',
		policy_number   TEXT NOT NULL DEFAULT '',
		estimator_id    TEXT NOT NULL REFERENCES estimator_profiles(id),
		client_name     TEXT NOT NULL DEFAULT '',
		carrier         TEXT NOT NULL DEFAULT '',
		peril           TEXT NOT NULL DEFAULT '',
		severity        INTEGER CHECK(severity BETWEEN 1 AND 5),
		estimate_value  REAL CHECK(estimate_value >= 0),
		rcv             REAL,
		acv             REAL,
		deductible      REAL,
		net_claim       REAL,
		active_minutes   INTEGER NOT NULL DEFAULT 0 CHECK(active_minutes >= 0),
		blocked_minutes  INTEGER NOT NULL DEFAULT 0 CHECK(blocked_minutes >= 0),
		total_minutes    INTEGER NOT NULL DEFAULT 0 CHECK(total_minutes >= 0),
		revision_minutes INTEGER NOT NULL DEFAULT 0 CHECK(revision_minutes >= 0),
		revisions        INTEGER NOT NULL DEFAULT 0 CHECK(revisions >= 0),
		status          TEXT NOT NULL DEFAULT 'assigned'
		                CHECK(status IN ('assigned','in-progress','blocked','review',
		                                 'sent-to-carrier','revision-requested','revised',
		                                 'settled','closed','unable-to-start')),
		current_blocker_type   TEXT,
		current_blocker_name   TEXT NOT NULL DEFAULT '',
		current_blocker_reason TEXT NOT NULL DEFAULT '',
		current_blocked_at     TEXT,
		actual_settlement REAL,
		settlement_date   TEXT,
		is_settled        INTEGER NOT NULL DEFAULT 0,
		date_received        TEXT NOT NULL,
		date_started         TEXT,
		date_completed       TEXT,
		date_sent_to_carrier TEXT,
		date_closed          TEXT,
		sla_target_hours INTEGER,
		sla_breached     INTEGER NOT NULL DEFAULT 0,
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_estimates_estimator ON estimates(estimator_id)`,
	`CREATE INDEX IF NOT EXISTS idx_estimates_status ON estimates(status)`,
	`CREATE INDEX IF NOT EXISTS idx_estimates_file_number ON estimates(file_number)`,

	`CREATE TABLE IF NOT EXISTS blockers (
		id               TEXT PRIMARY KEY,
		estimate_id      TEXT NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		estimator_id     TEXT NOT NULL,
		file_number      TEXT NOT NULL,
		blocker_type     TEXT NOT NULL
		                 CHECK(blocker_type IN ('scoper','public-adjuster','carrier','contractor',
		                                        'client','internal','documentation','other')),
		blocker_name     TEXT NOT NULL DEFAULT '',
		blocker_reason   TEXT NOT NULL DEFAULT '',
		blocked_at       TEXT NOT NULL,
		resolved_at      TEXT,
		duration_minutes INTEGER,
		is_active        INTEGER NOT NULL DEFAULT 1,
		resolution_note  TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_blockers_estimate ON blockers(estimate_id)`,
	// At most one active blocker per estimate, enforced by the store itself.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_blockers_one_active
		ON blockers(estimate_id) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS estimate_events (
		id            TEXT PRIMARY KEY,
		estimate_id   TEXT NOT NULL,
		estimator_id  TEXT NOT NULL,
		file_number   TEXT NOT NULL,
		event_type    TEXT NOT NULL
		              CHECK(event_type IN ('status-change','blocker-set','blocker-cleared',
		                                   'created','field-edit')),
		from_status   TEXT,
		to_status     TEXT,
		blocker_type  TEXT,
		blocker_name  TEXT,
		blocker_reason TEXT,
		blocker_duration_minutes INTEGER,
		description   TEXT NOT NULL DEFAULT '',
		triggered_by  TEXT NOT NULL DEFAULT 'user',
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_estimate ON estimate_events(estimate_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_created ON estimate_events(created_at)`,

	`CREATE TABLE IF NOT EXISTS carriers (
		name        TEXT PRIMARY KEY,
		is_verified INTEGER NOT NULL DEFAULT 0,
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL
	)`,

	// Add settlement variance (actual vs estimate) to estimates
	`ALTER TABLE estimates ADD COLUMN settlement_variance REAL`,
}
