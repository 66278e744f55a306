package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fdalton/claimtrack/internal/db"
)

// SQLiteCarrierRepo maintains the known-carrier list used for form
// suggestions. Carriers are keyed by name.
type SQLiteCarrierRepo struct {
	db db.DBTX
}

// NewSQLiteCarrierRepo creates a new SQLiteCarrierRepo.
func NewSQLiteCarrierRepo(dbtx db.DBTX) *SQLiteCarrierRepo {
	return &SQLiteCarrierRepo{db: dbtx}
}

func (r *SQLiteCarrierRepo) Ensure(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	query := `INSERT INTO carriers (name, is_verified, is_active, created_at)
		VALUES (?, 0, 1, ?) ON CONFLICT(name) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("ensuring carrier: %w", err)
	}
	return nil
}

func (r *SQLiteCarrierRepo) ListVerified(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM carriers WHERE is_verified = 1 AND is_active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing carriers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning carrier row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating carriers: %w", err)
	}
	return names, nil
}
