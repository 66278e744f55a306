package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/domain"
)

// estimateColumns is the canonical SELECT column list for estimates.
const estimateColumns = `id, file_number, claim_number, policy_number, estimator_id,
		client_name, carrier, peril, severity, estimate_value, rcv, acv, deductible, net_claim,
		active_minutes, blocked_minutes, total_minutes, revision_minutes, revisions, status,
		current_blocker_type, current_blocker_name, current_blocker_reason, current_blocked_at,
		actual_settlement, settlement_date, is_settled, settlement_variance,
		date_received, date_started, date_completed, date_sent_to_carrier, date_closed,
		sla_target_hours, sla_breached, notes, created_at, updated_at`

// SQLiteEstimateRepo implements EstimateRepo over a DBTX, so the same code
// serves both plain and transactional access.
type SQLiteEstimateRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(dbtx db.DBTX) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: dbtx}
}

func (r *SQLiteEstimateRepo) Create(ctx context.Context, e *domain.ClaimEstimate) error {
	query := `INSERT INTO estimates (` + estimateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		        ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.FileNumber,
		e.ClaimNumber,
		e.PolicyNumber,
		e.EstimatorID,
		e.ClientName,
		e.Carrier,
		e.Peril,
		nullableInt(e.Severity),
		nullableFloat(e.EstimateValue),
		nullableFloat(e.RCV),
		nullableFloat(e.ACV),
		nullableFloat(e.Deductible),
		nullableFloat(e.NetClaim),
		e.ActiveMinutes,
		e.BlockedMinutes,
		e.TotalMinutes,
		e.RevisionMinutes,
		e.Revisions,
		string(e.Status),
		blockerTypeToValue(e.CurrentBlockerType),
		e.CurrentBlockerName,
		e.CurrentBlockerReason,
		nullableTimeToString(e.CurrentBlockedAt, time.RFC3339),
		nullableFloat(e.ActualSettlement),
		nullableTimeToString(e.SettlementDate, time.RFC3339),
		boolToInt(e.IsSettled),
		nullableFloat(e.SettlementVariance),
		e.DateReceived.Format(time.RFC3339),
		nullableTimeToString(e.DateStarted, time.RFC3339),
		nullableTimeToString(e.DateCompleted, time.RFC3339),
		nullableTimeToString(e.DateSentToCarrier, time.RFC3339),
		nullableTimeToString(e.DateClosed, time.RFC3339),
		nullableInt(e.SLATargetHours),
		boolToInt(e.SLABreached),
		e.Notes,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) GetByID(ctx context.Context, id string) (*domain.ClaimEstimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = ?`
	return scanEstimateRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEstimateRepo) GetByFileNumber(ctx context.Context, fileNumber string) (*domain.ClaimEstimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates
		WHERE file_number = ? ORDER BY date_received DESC LIMIT 1`
	return scanEstimateRow(r.db.QueryRowContext(ctx, query, fileNumber))
}

func (r *SQLiteEstimateRepo) List(ctx context.Context) ([]*domain.ClaimEstimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates ORDER BY date_received DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer rows.Close()
	return scanEstimateRows(rows)
}

func (r *SQLiteEstimateRepo) ListByEstimator(ctx context.Context, estimatorID string) ([]*domain.ClaimEstimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates
		WHERE estimator_id = ? ORDER BY date_received DESC`
	rows, err := r.db.QueryContext(ctx, query, estimatorID)
	if err != nil {
		return nil, fmt.Errorf("listing estimates by estimator: %w", err)
	}
	defer rows.Close()
	return scanEstimateRows(rows)
}

func (r *SQLiteEstimateRepo) ListOpen(ctx context.Context) ([]*domain.ClaimEstimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates
		WHERE status != 'closed' ORDER BY date_received DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing open estimates: %w", err)
	}
	defer rows.Close()
	return scanEstimateRows(rows)
}

func (r *SQLiteEstimateRepo) Update(ctx context.Context, e *domain.ClaimEstimate) error {
	query := `UPDATE estimates SET file_number = ?, claim_number = ?, policy_number = ?,
		estimator_id = ?, client_name = ?, carrier = ?, peril = ?, severity = ?,
		estimate_value = ?, rcv = ?, acv = ?, deductible = ?, net_claim = ?,
		active_minutes = ?, blocked_minutes = ?, total_minutes = ?, revision_minutes = ?,
		revisions = ?, status = ?,
		current_blocker_type = ?, current_blocker_name = ?, current_blocker_reason = ?,
		current_blocked_at = ?,
		actual_settlement = ?, settlement_date = ?, is_settled = ?, settlement_variance = ?,
		date_received = ?, date_started = ?, date_completed = ?, date_sent_to_carrier = ?,
		date_closed = ?, sla_target_hours = ?, sla_breached = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.FileNumber,
		e.ClaimNumber,
		e.PolicyNumber,
		e.EstimatorID,
		e.ClientName,
		e.Carrier,
		e.Peril,
		nullableInt(e.Severity),
		nullableFloat(e.EstimateValue),
		nullableFloat(e.RCV),
		nullableFloat(e.ACV),
		nullableFloat(e.Deductible),
		nullableFloat(e.NetClaim),
		e.ActiveMinutes,
		e.BlockedMinutes,
		e.TotalMinutes,
		e.RevisionMinutes,
		e.Revisions,
		string(e.Status),
		blockerTypeToValue(e.CurrentBlockerType),
		e.CurrentBlockerName,
		e.CurrentBlockerReason,
		nullableTimeToString(e.CurrentBlockedAt, time.RFC3339),
		nullableFloat(e.ActualSettlement),
		nullableTimeToString(e.SettlementDate, time.RFC3339),
		boolToInt(e.IsSettled),
		nullableFloat(e.SettlementVariance),
		e.DateReceived.Format(time.RFC3339),
		nullableTimeToString(e.DateStarted, time.RFC3339),
		nullableTimeToString(e.DateCompleted, time.RFC3339),
		nullableTimeToString(e.DateSentToCarrier, time.RFC3339),
		nullableTimeToString(e.DateClosed, time.RFC3339),
		nullableInt(e.SLATargetHours),
		boolToInt(e.SLABreached),
		e.Notes,
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating estimate: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("estimate %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteEstimateRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting estimate: %w", err)
	}
	return nil
}

func blockerTypeToValue(t *domain.BlockerType) interface{} {
	if t == nil {
		return nil
	}
	return string(*t)
}

func scanEstimateRow(row *sql.Row) (*domain.ClaimEstimate, error) {
	e, err := scanEstimate(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("estimate: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning estimate: %w", err)
	}
	return e, nil
}

func scanEstimateRows(rows *sql.Rows) ([]*domain.ClaimEstimate, error) {
	var estimates []*domain.ClaimEstimate
	for rows.Next() {
		e, err := scanEstimate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning estimate row: %w", err)
		}
		estimates = append(estimates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimates: %w", err)
	}
	return estimates, nil
}

// scanEstimate reads one estimate from a Scan-shaped function, shared between
// single-row and multi-row paths.
func scanEstimate(scan func(dest ...any) error) (*domain.ClaimEstimate, error) {
	var e domain.ClaimEstimate
	var statusStr string
	var severity, slaTargetHours sql.NullInt64
	var estimateValue, rcv, acv, deductible, netClaim sql.NullFloat64
	var actualSettlement, settlementVariance sql.NullFloat64
	var blockerTypeStr, blockedAtStr, settlementDateStr sql.NullString
	var startedStr, completedStr, sentStr, closedStr sql.NullString
	var isSettledInt, slaBreachedInt int
	var receivedStr, createdAtStr, updatedAtStr string

	err := scan(
		&e.ID, &e.FileNumber, &e.ClaimNumber, &e.PolicyNumber, &e.EstimatorID,
		&e.ClientName, &e.Carrier, &e.Peril, &severity, &estimateValue,
		&rcv, &acv, &deductible, &netClaim,
		&e.ActiveMinutes, &e.BlockedMinutes, &e.TotalMinutes, &e.RevisionMinutes,
		&e.Revisions, &statusStr,
		&blockerTypeStr, &e.CurrentBlockerName, &e.CurrentBlockerReason, &blockedAtStr,
		&actualSettlement, &settlementDateStr, &isSettledInt, &settlementVariance,
		&receivedStr, &startedStr, &completedStr, &sentStr, &closedStr,
		&slaTargetHours, &slaBreachedInt, &e.Notes, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	e.Status = domain.EstimateStatus(statusStr)
	e.Severity = intPtr(severity)
	e.EstimateValue = floatPtr(estimateValue)
	e.RCV = floatPtr(rcv)
	e.ACV = floatPtr(acv)
	e.Deductible = floatPtr(deductible)
	e.NetClaim = floatPtr(netClaim)
	e.ActualSettlement = floatPtr(actualSettlement)
	e.SettlementVariance = floatPtr(settlementVariance)
	e.IsSettled = intToBool(isSettledInt)
	e.SLATargetHours = intPtr(slaTargetHours)
	e.SLABreached = intToBool(slaBreachedInt)

	if blockerTypeStr.Valid && blockerTypeStr.String != "" {
		bt := domain.BlockerType(blockerTypeStr.String)
		e.CurrentBlockerType = &bt
	}
	e.CurrentBlockedAt = parseNullableTime(blockedAtStr, time.RFC3339)
	e.SettlementDate = parseNullableTime(settlementDateStr, time.RFC3339)
	e.DateStarted = parseNullableTime(startedStr, time.RFC3339)
	e.DateCompleted = parseNullableTime(completedStr, time.RFC3339)
	e.DateSentToCarrier = parseNullableTime(sentStr, time.RFC3339)
	e.DateClosed = parseNullableTime(closedStr, time.RFC3339)

	var parseErr error
	e.DateReceived, parseErr = time.Parse(time.RFC3339, receivedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date_received: %w", parseErr)
	}
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &e, nil
}
