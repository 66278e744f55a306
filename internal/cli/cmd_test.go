package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/fdalton/claimtrack/internal/repository"
	"github.com/fdalton/claimtrack/internal/service"
	"github.com/fdalton/claimtrack/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration
// tests. Interactive stays false so commands never open forms.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	estimateRepo := repository.NewSQLiteEstimateRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	carrierRepo := repository.NewSQLiteCarrierRepo(database)
	estimatorRepo := repository.NewSQLiteEstimatorRepo(database)
	blockerRepo := repository.NewSQLiteBlockerRepo(database)

	return &App{
		Estimates:  service.NewEstimateService(estimateRepo, eventRepo, carrierRepo, uow, nil),
		Lifecycle:  service.NewLifecycleService(uow, nil),
		Estimators: service.NewEstimatorService(estimatorRepo),
		Reports:    service.NewReportService(estimateRepo, estimatorRepo, blockerRepo),
		Import:     service.NewImportService(uow, nil),
	}
}

// seedEstimator creates a profile and returns it.
func seedEstimator(t *testing.T, a *App) *domain.EstimatorProfile {
	t.Helper()
	p := testutil.NewTestEstimator("Dana Field")
	require.NoError(t, a.Estimators.Create(context.Background(), p))
	return p
}

// seedEstimate creates an estimate owned by the given profile.
func seedEstimate(t *testing.T, a *App, estimatorID string, opts ...testutil.EstimateOption) *domain.ClaimEstimate {
	t.Helper()
	e := testutil.NewTestEstimate(estimatorID, opts...)
	require.NoError(t, a.Estimates.Create(context.Background(), e))
	return e
}

// executeCmd runs a cobra command and captures cobra-managed output.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestAddCmd_CreatesEstimate(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)

	_, err := executeCmd(t, a,
		"add", "--file", "FL-2026000001", "--client", "Avelina Cerezo",
		"--carrier", "Harbor Mutual", "--severity", "3", "--value", "42500",
		"--estimator", p.UserID)
	require.NoError(t, err)

	e, err := a.Estimates.GetByFileNumber(context.Background(), "FL-2026000001")
	require.NoError(t, err)
	assert.Equal(t, "Avelina Cerezo", e.ClientName)
	assert.Equal(t, p.ID, e.EstimatorID)
	require.NotNil(t, e.Severity)
	assert.Equal(t, 3, *e.Severity)
	assert.Equal(t, domain.StatusAssigned, e.Status)
}

func TestAddCmd_UnknownEstimator(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "add", "--file", "FL-1", "--estimator", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estimator not found")
}

func TestAddCmd_NoDefaultEstimator(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "add", "--file", "FL-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estimator is required")
}

func TestAddCmd_DefaultEstimatorFromConfig(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	a.DefaultEstimator = p.UserID

	_, err := executeCmd(t, a, "add", "--file", "FL-2026000002", "--client", "C")
	require.NoError(t, err)

	e, err := a.Estimates.GetByFileNumber(context.Background(), "FL-2026000002")
	require.NoError(t, err)
	assert.Equal(t, p.ID, e.EstimatorID)
}

func TestMoveCmd_ByFileNumber(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "move", e.FileNumber, "in-progress")
	require.NoError(t, err)

	got, err := a.Estimates.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.NotNil(t, got.DateStarted)
}

func TestMoveCmd_DisallowedTransition(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "move", e.FileNumber, "settled")
	require.Error(t, err)

	var invalid *domain.InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}

func TestMoveCmd_NoStatusNonInteractive(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "move", e.FileNumber)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-interactive")
}

func TestBlockUnblockCmds_RoundTrip(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "move", e.FileNumber, "in-progress")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "block", e.FileNumber,
		"--type", "carrier", "--who", "Jordan", "--reason", "waiting on declarations")
	require.NoError(t, err)

	got, err := a.Estimates.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBlocked, got.Status)

	_, err = executeCmd(t, a, "unblock", e.FileNumber, "--note", "received")
	require.NoError(t, err)

	got, err = a.Estimates.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Nil(t, got.CurrentBlockerType)
}

func TestBlockCmd_MissingTypeNonInteractive(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "block", e.FileNumber)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--type is required")
}

func TestLogCmd_DecimalHoursAndMinutes(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "log", e.FileNumber, "1.5")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "log", e.FileNumber, "45m")
	require.NoError(t, err)

	got, err := a.Estimates.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 135, got.ActiveMinutes)
}

func TestLogCmd_RevisionBucket(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "log", e.FileNumber, "2", "--revision")
	require.NoError(t, err)

	got, err := a.Estimates.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.RevisionMinutes)
	assert.Zero(t, got.ActiveMinutes)
}

func TestLogCmd_BadInput(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "log", e.FileNumber, "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hours")
}

func TestEditCmd_ValidationLeavesStoredValue(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "edit", e.FileNumber, "--severity", "9")
	require.Error(t, err)

	got, err := a.Estimates.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Severity)
}

func TestSettleCmd_RecordsSettlement(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "settle", e.FileNumber, "--amount", "47500", "--date", "2026-08-20")
	require.NoError(t, err)

	got, err := a.Estimates.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSettled)
	require.NotNil(t, got.ActualSettlement)
	assert.InDelta(t, 47500, *got.ActualSettlement, 0.01)
}

func TestEventsCmd_UnknownFile(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "events", "CLM-9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolveEstimate_IDPrefix(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	e := seedEstimate(t, a, p.ID)

	got, err := resolveEstimate(context.Background(), a, e.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestEstimatorCmds_AddListTargets(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "estimator", "add", "--user", "dfield", "--name", "Dana Field")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "estimator", "targets", "dfield", "--dollars-per-hour", "12000")
	require.NoError(t, err)

	p, err := a.Estimators.GetByUserID(context.Background(), "dfield")
	require.NoError(t, err)
	require.NotNil(t, p.TargetDollarsPerHour)
	assert.InDelta(t, 12000, *p.TargetDollarsPerHour, 0.01)
}

func TestScorecardCmd_UnknownEstimator(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "scorecard", "ghost")
	require.Error(t, err)
}

func TestScorecardCmd_RunsForSeededEstimator(t *testing.T) {
	a := testApp(t)
	p := seedEstimator(t, a)
	seedEstimate(t, a, p.ID)

	_, err := executeCmd(t, a, "scorecard", p.UserID)
	require.NoError(t, err)
}

func TestTeamCmd_RunsEmpty(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "team")
	require.NoError(t, err)
}
