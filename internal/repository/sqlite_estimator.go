package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/db"
	"github.com/fdalton/claimtrack/internal/domain"
)

const estimatorColumns = `id, user_id, display_name, is_active,
		target_dollars_per_hour, target_estimates_per_week,
		target_max_revision_rate, target_max_cycle_days, created_at, updated_at`

type SQLiteEstimatorRepo struct {
	db db.DBTX
}

// NewSQLiteEstimatorRepo creates a new SQLiteEstimatorRepo.
func NewSQLiteEstimatorRepo(dbtx db.DBTX) *SQLiteEstimatorRepo {
	return &SQLiteEstimatorRepo{db: dbtx}
}

func (r *SQLiteEstimatorRepo) Create(ctx context.Context, p *domain.EstimatorProfile) error {
	query := `INSERT INTO estimator_profiles (` + estimatorColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.DisplayName,
		boolToInt(p.Active),
		nullableFloat(p.TargetDollarsPerHour),
		nullableInt(p.TargetEstimatesPerWeek),
		nullableFloat(p.TargetMaxRevisionRate),
		nullableFloat(p.TargetMaxCycleDays),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting estimator profile: %w", err)
	}
	return nil
}

func (r *SQLiteEstimatorRepo) GetByID(ctx context.Context, id string) (*domain.EstimatorProfile, error) {
	query := `SELECT ` + estimatorColumns + ` FROM estimator_profiles WHERE id = ?`
	return scanEstimatorRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEstimatorRepo) GetByUserID(ctx context.Context, userID string) (*domain.EstimatorProfile, error) {
	query := `SELECT ` + estimatorColumns + ` FROM estimator_profiles WHERE user_id = ?`
	return scanEstimatorRow(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLiteEstimatorRepo) ListActive(ctx context.Context) ([]*domain.EstimatorProfile, error) {
	query := `SELECT ` + estimatorColumns + ` FROM estimator_profiles
		WHERE is_active = 1 ORDER BY display_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing estimator profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.EstimatorProfile
	for rows.Next() {
		p, err := scanEstimator(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning estimator profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimator profiles: %w", err)
	}
	return profiles, nil
}

func (r *SQLiteEstimatorRepo) Update(ctx context.Context, p *domain.EstimatorProfile) error {
	query := `UPDATE estimator_profiles SET user_id = ?, display_name = ?, is_active = ?,
		target_dollars_per_hour = ?, target_estimates_per_week = ?,
		target_max_revision_rate = ?, target_max_cycle_days = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.UserID,
		p.DisplayName,
		boolToInt(p.Active),
		nullableFloat(p.TargetDollarsPerHour),
		nullableInt(p.TargetEstimatesPerWeek),
		nullableFloat(p.TargetMaxRevisionRate),
		nullableFloat(p.TargetMaxCycleDays),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating estimator profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("estimator profile %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func scanEstimatorRow(row *sql.Row) (*domain.EstimatorProfile, error) {
	p, err := scanEstimator(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("estimator profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning estimator profile: %w", err)
	}
	return p, nil
}

func scanEstimator(scan func(dest ...any) error) (*domain.EstimatorProfile, error) {
	var p domain.EstimatorProfile
	var activeInt int
	var targetDPH, targetRevRate, targetCycleDays sql.NullFloat64
	var targetPerWeek sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := scan(
		&p.ID, &p.UserID, &p.DisplayName, &activeInt,
		&targetDPH, &targetPerWeek, &targetRevRate, &targetCycleDays,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	p.Active = intToBool(activeInt)
	p.TargetDollarsPerHour = floatPtr(targetDPH)
	p.TargetEstimatesPerWeek = intPtr(targetPerWeek)
	p.TargetMaxRevisionRate = floatPtr(targetRevRate)
	p.TargetMaxCycleDays = floatPtr(targetCycleDays)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
