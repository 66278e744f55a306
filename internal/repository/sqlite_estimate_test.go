package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEstimator(t *testing.T, repo *SQLiteEstimatorRepo) *domain.EstimatorProfile {
	t.Helper()
	p := testutil.NewTestEstimator("Dana Vo")
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestEstimateRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	est := seedEstimator(t, NewSQLiteEstimatorRepo(db))
	repo := NewSQLiteEstimateRepo(db)

	e := testutil.NewTestEstimate(est.ID,
		testutil.WithSeverity(3),
		testutil.WithEstimateValue(42500),
		testutil.WithActiveMinutes(120),
	)
	e.RCV = floatTestPtr(50000)
	e.Deductible = floatTestPtr(2500)
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.FileNumber, got.FileNumber)
	assert.Equal(t, domain.StatusAssigned, got.Status)
	require.NotNil(t, got.Severity)
	assert.Equal(t, 3, *got.Severity)
	require.NotNil(t, got.EstimateValue)
	assert.Equal(t, 42500.0, *got.EstimateValue)
	require.NotNil(t, got.RCV)
	assert.Equal(t, 50000.0, *got.RCV)
	assert.Equal(t, 120, got.ActiveMinutes)
	assert.Equal(t, 120, got.TotalMinutes)
	assert.Nil(t, got.ACV)
	assert.Nil(t, got.CurrentBlockerType)
	assert.Nil(t, got.DateStarted)
	assert.WithinDuration(t, e.DateReceived, got.DateReceived, time.Second)
}

func TestEstimateRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)

	repo := NewSQLiteEstimateRepo(db)
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// File numbers repeat when a claim is re-opened under the same file; lookups
// should return the most recently received row.
func TestEstimateRepo_GetByFileNumber_MostRecent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	est := seedEstimator(t, NewSQLiteEstimatorRepo(db))
	repo := NewSQLiteEstimateRepo(db)

	older := testutil.NewTestEstimate(est.ID,
		testutil.WithFileNumber("CLM-SHARED"),
		testutil.WithDateReceived(time.Now().UTC().AddDate(0, 0, -30)),
	)
	newer := testutil.NewTestEstimate(est.ID,
		testutil.WithFileNumber("CLM-SHARED"),
		testutil.WithDateReceived(time.Now().UTC().AddDate(0, 0, -1)),
	)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.GetByFileNumber(ctx, "CLM-SHARED")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}

func TestEstimateRepo_Update_RoundTripsBlockerFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	est := seedEstimator(t, NewSQLiteEstimatorRepo(db))
	repo := NewSQLiteEstimateRepo(db)

	e := testutil.NewTestEstimate(est.ID, testutil.WithStatus(domain.StatusInProgress))
	require.NoError(t, repo.Create(ctx, e))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, e.ApplyBlock(domain.BlockerCarrier, "J. Ruiz", "awaiting scope approval", now))
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, got.Status)
	require.NotNil(t, got.CurrentBlockerType)
	assert.Equal(t, domain.BlockerCarrier, *got.CurrentBlockerType)
	assert.Equal(t, "J. Ruiz", got.CurrentBlockerName)
	require.NotNil(t, got.CurrentBlockedAt)
	assert.WithinDuration(t, now, *got.CurrentBlockedAt, time.Second)
}

func TestEstimateRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)

	repo := NewSQLiteEstimateRepo(db)
	e := testutil.NewTestEstimate("nobody")
	err := repo.Update(context.Background(), e)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEstimateRepo_ListOpen_ExcludesClosed(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	est := seedEstimator(t, NewSQLiteEstimatorRepo(db))
	repo := NewSQLiteEstimateRepo(db)

	open := testutil.NewTestEstimate(est.ID, testutil.WithStatus(domain.StatusInProgress))
	closed := testutil.NewTestEstimate(est.ID, testutil.WithStatus(domain.StatusClosed))
	require.NoError(t, repo.Create(ctx, open))
	require.NoError(t, repo.Create(ctx, closed))

	got, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, open.ID, got[0].ID)
}

func TestEstimateRepo_ListByEstimator(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	estRepo := NewSQLiteEstimatorRepo(db)
	a := seedEstimator(t, estRepo)
	b := testutil.NewTestEstimator("Sam Ortiz")
	require.NoError(t, estRepo.Create(ctx, b))

	repo := NewSQLiteEstimateRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestEstimate(a.ID)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEstimate(a.ID)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEstimate(b.ID)))

	got, err := repo.ListByEstimator(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, a.ID, e.EstimatorID)
	}
}

func TestEstimateRepo_SeverityCheckConstraint(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	est := seedEstimator(t, NewSQLiteEstimatorRepo(db))
	repo := NewSQLiteEstimateRepo(db)

	e := testutil.NewTestEstimate(est.ID, testutil.WithSeverity(9))
	err := repo.Create(ctx, e)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func floatTestPtr(v float64) *float64 { return &v }
