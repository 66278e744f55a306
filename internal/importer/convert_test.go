package importer

import (
	"testing"
	"time"

	"github.com/fdalton/claimtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_FullBatch(t *testing.T) {
	b := validBatch()
	started := "2026-08-11"
	b.Estimates[0].DateStarted = &started

	out, err := Convert(b)
	require.NoError(t, err)

	require.Len(t, out.Estimators, 1)
	p := out.Estimators[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "dvo", p.UserID)
	assert.True(t, p.Active)

	require.Len(t, out.Estimates, 1)
	e := out.Estimates[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "FL-2024001234", e.FileNumber)
	assert.Equal(t, domain.StatusInProgress, e.Status)
	assert.Equal(t, 120, e.ActiveMinutes)
	assert.Equal(t, 120, e.TotalMinutes)
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), e.DateReceived)
	require.NotNil(t, e.DateStarted)
	assert.Equal(t, time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), *e.DateStarted)

	require.Len(t, out.EstimateOwners, 1)
	assert.Equal(t, "dvo", out.EstimateOwners[0])
}

func TestConvert_DefaultsStatusToAssigned(t *testing.T) {
	b := validBatch()
	b.Estimates[0].Status = ""

	out, err := Convert(b)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, out.Estimates[0].Status)
}

func TestConvert_TotalIsActivePlusBlocked(t *testing.T) {
	b := validBatch()
	b.Estimates[0].ActiveMinutes = 90
	b.Estimates[0].BlockedMinutes = 30

	out, err := Convert(b)
	require.NoError(t, err)
	assert.Equal(t, 120, out.Estimates[0].TotalMinutes)
}
