package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/domain"
)

const blockerColumns = `id, estimate_id, estimator_id, file_number, blocker_type,
		blocker_name, blocker_reason, blocked_at, resolved_at, duration_minutes,
		is_active, resolution_note, created_at`

type SQLiteBlockerRepo struct {
	db db.DBTX
}

// NewSQLiteBlockerRepo creates a new SQLiteBlockerRepo.
func NewSQLiteBlockerRepo(dbtx db.DBTX) *SQLiteBlockerRepo {
	return &SQLiteBlockerRepo{db: dbtx}
}

func (r *SQLiteBlockerRepo) Create(ctx context.Context, b *domain.Blocker) error {
	query := `INSERT INTO blockers (` + blockerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.EstimateID,
		b.EstimatorID,
		b.FileNumber,
		string(b.Type),
		b.Name,
		b.Reason,
		b.BlockedAt.Format(time.RFC3339),
		nullableTimeToString(b.ResolvedAt, time.RFC3339),
		nullableInt(b.DurationMinutes),
		boolToInt(b.Active),
		b.ResolutionNote,
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting blocker: %w", err)
	}
	return nil
}

func (r *SQLiteBlockerRepo) GetActiveByEstimate(ctx context.Context, estimateID string) (*domain.Blocker, error) {
	query := `SELECT ` + blockerColumns + ` FROM blockers
		WHERE estimate_id = ? AND is_active = 1`
	b, err := scanBlocker(r.db.QueryRowContext(ctx, query, estimateID).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("active blocker: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning blocker: %w", err)
	}
	return b, nil
}

func (r *SQLiteBlockerRepo) ListByEstimate(ctx context.Context, estimateID string) ([]*domain.Blocker, error) {
	query := `SELECT ` + blockerColumns + ` FROM blockers
		WHERE estimate_id = ? ORDER BY blocked_at`
	rows, err := r.db.QueryContext(ctx, query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("listing blockers: %w", err)
	}
	defer rows.Close()
	return scanBlockerRows(rows)
}

func (r *SQLiteBlockerRepo) ListActive(ctx context.Context) ([]*domain.Blocker, error) {
	query := `SELECT ` + blockerColumns + ` FROM blockers
		WHERE is_active = 1 ORDER BY blocked_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing active blockers: %w", err)
	}
	defer rows.Close()
	return scanBlockerRows(rows)
}

func (r *SQLiteBlockerRepo) Update(ctx context.Context, b *domain.Blocker) error {
	query := `UPDATE blockers SET blocker_type = ?, blocker_name = ?, blocker_reason = ?,
		blocked_at = ?, resolved_at = ?, duration_minutes = ?, is_active = ?,
		resolution_note = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(b.Type),
		b.Name,
		b.Reason,
		b.BlockedAt.Format(time.RFC3339),
		nullableTimeToString(b.ResolvedAt, time.RFC3339),
		nullableInt(b.DurationMinutes),
		boolToInt(b.Active),
		b.ResolutionNote,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating blocker: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("blocker %s: %w", b.ID, ErrNotFound)
	}
	return nil
}

func scanBlockerRows(rows *sql.Rows) ([]*domain.Blocker, error) {
	var blockers []*domain.Blocker
	for rows.Next() {
		b, err := scanBlocker(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning blocker row: %w", err)
		}
		blockers = append(blockers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blockers: %w", err)
	}
	return blockers, nil
}

func scanBlocker(scan func(dest ...any) error) (*domain.Blocker, error) {
	var b domain.Blocker
	var typeStr, blockedAtStr, createdAtStr string
	var resolvedAtStr sql.NullString
	var duration sql.NullInt64
	var activeInt int

	err := scan(
		&b.ID, &b.EstimateID, &b.EstimatorID, &b.FileNumber, &typeStr,
		&b.Name, &b.Reason, &blockedAtStr, &resolvedAtStr, &duration,
		&activeInt, &b.ResolutionNote, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	b.Type = domain.BlockerType(typeStr)
	b.ResolvedAt = parseNullableTime(resolvedAtStr, time.RFC3339)
	b.DurationMinutes = intPtr(duration)
	b.Active = intToBool(activeInt)

	var parseErr error
	b.BlockedAt, parseErr = time.Parse(time.RFC3339, blockedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing blocked_at: %w", parseErr)
	}
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &b, nil
}
