package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/importer"
	"github.com/fdalton/claimtrack/internal/repository"
	"github.com/fdalton/claimtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importBatch() *importer.BatchImport {
	sev := 2
	value := 18000.0
	return &importer.BatchImport{
		Estimators: []importer.EstimatorImport{
			{UserID: "dvo", DisplayName: "Dana Vo"},
		},
		Estimates: []importer.EstimateImport{
			{
				FileNumber:    "FL-2024000001",
				Estimator:     "dvo",
				Carrier:       "Harbor Mutual",
				Peril:         "wind",
				Severity:      &sev,
				EstimateValue: &value,
				Status:        "in-progress",
				ActiveMinutes: 60,
				DateReceived:  "2026-08-10",
			},
			{
				FileNumber:   "FL-2024000002",
				Estimator:    "dvo",
				DateReceived: "2026-08-12",
			},
		},
	}
}

func TestImportBatch_CreatesEverything(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	svc := NewImportService(testutil.NewTestUoW(database), nil)
	result, err := svc.ImportBatch(ctx, importBatch())
	require.NoError(t, err)
	assert.Equal(t, 1, result.EstimatorsCreated)
	assert.Zero(t, result.EstimatorsReused)
	assert.Equal(t, 2, result.EstimatesCreated)

	profiles := repository.NewSQLiteEstimatorRepo(database)
	p, err := profiles.GetByUserID(ctx, "dvo")
	require.NoError(t, err)

	estimates := repository.NewSQLiteEstimateRepo(database)
	owned, err := estimates.ListByEstimator(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	events := repository.NewSQLiteEventRepo(database)
	evs, err := events.ListByEstimate(ctx, owned[0].ID)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, domain.EventCreated, evs[0].Type)
	assert.Equal(t, "import", evs[0].TriggeredBy)
}

func TestImportBatch_ReusesExistingEstimator(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	profiles := repository.NewSQLiteEstimatorRepo(database)
	existing := testutil.NewTestEstimator("Dana Vo", testutil.WithUserID("dvo"))
	require.NoError(t, profiles.Create(ctx, existing))

	svc := NewImportService(testutil.NewTestUoW(database), nil)
	result, err := svc.ImportBatch(ctx, importBatch())
	require.NoError(t, err)
	assert.Zero(t, result.EstimatorsCreated)
	assert.Equal(t, 1, result.EstimatorsReused)

	estimates := repository.NewSQLiteEstimateRepo(database)
	owned, err := estimates.ListByEstimator(ctx, existing.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestImportBatch_UnknownEstimatorReference(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	batch := importBatch()
	batch.Estimators = nil // estimates reference "dvo" which exists nowhere

	svc := NewImportService(testutil.NewTestUoW(database), nil)
	_, err := svc.ImportBatch(ctx, batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown estimator")
}

func TestImportBatch_ValidationFailureImportsNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	batch := importBatch()
	batch.Estimates[1].DateReceived = "bad"

	svc := NewImportService(testutil.NewTestUoW(database), nil)
	_, err := svc.ImportBatch(ctx, batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")

	estimates := repository.NewSQLiteEstimateRepo(database)
	all, err := estimates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportBatch_MidBatchFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	boom := errors.New("disk full")
	// Write order: profile (1), carrier (2), estimate (3), event (4), then
	// the second estimate (5). Failing there must undo everything before it.
	svc := NewImportService(&testutil.FailOnNthExecUoW{DB: database, FailOn: 5, Err: boom}, nil)
	_, err := svc.ImportBatch(ctx, importBatch())
	require.ErrorIs(t, err, boom)

	estimates := repository.NewSQLiteEstimateRepo(database)
	all, err := estimates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	profiles := repository.NewSQLiteEstimatorRepo(database)
	_, err = profiles.GetByUserID(ctx, "dvo")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
