package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/domain"
)

const eventColumns = `id, estimate_id, estimator_id, file_number, event_type,
		from_status, to_status, blocker_type, blocker_name, blocker_reason,
		blocker_duration_minutes, description, triggered_by, created_at`

type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo.
func NewSQLiteEventRepo(dbtx db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: dbtx}
}

func (r *SQLiteEventRepo) Append(ctx context.Context, ev *domain.EstimateEvent) error {
	query := `INSERT INTO estimate_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ev.ID,
		ev.EstimateID,
		ev.EstimatorID,
		ev.FileNumber,
		string(ev.Type),
		statusToValue(ev.FromStatus),
		statusToValue(ev.ToStatus),
		blockerTypeToValue(ev.BlockerType),
		nullableString(ev.BlockerName),
		nullableString(ev.BlockerReason),
		nullableInt(ev.BlockerDurationMinutes),
		ev.Description,
		ev.TriggeredBy,
		ev.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) ListByEstimate(ctx context.Context, estimateID string) ([]*domain.EstimateEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM estimate_events
		WHERE estimate_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*domain.EstimateEvent
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func statusToValue(s *domain.EstimateStatus) interface{} {
	if s == nil {
		return nil
	}
	return string(*s)
}

func scanEvent(scan func(dest ...any) error) (*domain.EstimateEvent, error) {
	var ev domain.EstimateEvent
	var typeStr, createdAtStr string
	var fromStr, toStr, blockerTypeStr, blockerName, blockerReason sql.NullString
	var blockerDuration sql.NullInt64

	err := scan(
		&ev.ID, &ev.EstimateID, &ev.EstimatorID, &ev.FileNumber, &typeStr,
		&fromStr, &toStr, &blockerTypeStr, &blockerName, &blockerReason,
		&blockerDuration, &ev.Description, &ev.TriggeredBy, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	ev.Type = domain.EventType(typeStr)
	if fromStr.Valid {
		s := domain.EstimateStatus(fromStr.String)
		ev.FromStatus = &s
	}
	if toStr.Valid {
		s := domain.EstimateStatus(toStr.String)
		ev.ToStatus = &s
	}
	if blockerTypeStr.Valid {
		bt := domain.BlockerType(blockerTypeStr.String)
		ev.BlockerType = &bt
	}
	ev.BlockerName = stringPtr(blockerName)
	ev.BlockerReason = stringPtr(blockerReason)
	ev.BlockerDurationMinutes = intPtr(blockerDuration)

	var parseErr error
	ev.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &ev, nil
}
