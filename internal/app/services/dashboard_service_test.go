package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLearnerCounter struct {
	total, active, male, female int
	err                         error
}

func (f fakeLearnerCounter) CountByInstitution(ctx context.Context, institutionID int64) (int, int, int, int, error) {
	return f.total, f.active, f.male, f.female, f.err
}

type fakeCounter struct {
	n   int
	err error
}

func (f fakeCounter) CountByInstitution(ctx context.Context, institutionID int64) (int, error) {
	return f.n, f.err
}

type fakeReceiptCounter struct {
	pending, verified int
	totalVerified     float64
	err               error
}

func (f fakeReceiptCounter) CountByInstitution(ctx context.Context, institutionID int64) (int, int, float64, error) {
	return f.pending, f.verified, f.totalVerified, f.err
}

func TestGetStats(t *testing.T) {
	svc := NewDashboardService(
		fakeLearnerCounter{total: 120, active: 110, male: 60, female: 60},
		fakeCounter{n: 14},
		fakeCounter{n: 380},
		fakeReceiptCounter{pending: 2, verified: 5, totalVerified: 750000},
	)

	stats, err := svc.GetStats(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalLearners)
	assert.Equal(t, 110, stats.ActiveLearners)
	assert.Equal(t, 60, stats.MaleLearners)
	assert.Equal(t, 60, stats.FemaleLearners)
	assert.Equal(t, 14, stats.TotalAssets)
	assert.Equal(t, 380, stats.TotalBooks)
	assert.Equal(t, 2, stats.PendingReceipts)
	assert.Equal(t, 5, stats.VerifiedReceipts)
	assert.Equal(t, 750000.0, stats.TotalCapitation)
}

func TestGetStats_PropagatesCounterFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewDashboardService(
		fakeLearnerCounter{err: boom},
		fakeCounter{},
		fakeCounter{},
		fakeReceiptCounter{},
	)

	_, err := svc.GetStats(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
