package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/domain/alerts"
)

type fakeUniform struct {
	name      string
	size      string
	stock     int
	threshold int
}

type fakeRepo struct {
	uniforms map[id.ID]*fakeUniform
	ledger   []*Adjustment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{uniforms: make(map[id.ID]*fakeUniform)}
}

func (r *fakeRepo) ApplyDelta(_ context.Context, uniformID id.ID, delta int) (*AppliedDelta, error) {
	u, ok := r.uniforms[uniformID]
	if !ok {
		return nil, apperror.NewNotFound("uniform", uniformID.String())
	}
	if u.stock+delta < 0 {
		return nil, apperror.NewInsufficientStock(uniformID.String(), -delta, u.stock)
	}
	u.stock += delta
	return &AppliedDelta{
		NewStock:  u.stock,
		Threshold: u.threshold,
		Name:      u.name,
		Size:      u.size,
	}, nil
}

func (r *fakeRepo) AppendAdjustment(_ context.Context, a *Adjustment) error {
	r.ledger = append(r.ledger, a)
	return nil
}

func (r *fakeRepo) ListAdjustments(_ context.Context, _ Filter) ([]Entry, error) {
	entries := make([]Entry, 0, len(r.ledger))
	for i := len(r.ledger) - 1; i >= 0; i-- {
		entries = append(entries, Entry{Adjustment: *r.ledger[i]})
	}
	return entries, nil
}

func (r *fakeRepo) UpdateThreshold(_ context.Context, uniformID id.ID, threshold int) error {
	u, ok := r.uniforms[uniformID]
	if !ok {
		return apperror.NewNotFound("uniform", uniformID.String())
	}
	u.threshold = threshold
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingAlerter struct {
	alerts []alerts.LowStockAlert
	err    error
}

func (a *recordingAlerter) LowStock(_ context.Context, alert alerts.LowStockAlert) error {
	if a.err != nil {
		return a.err
	}
	a.alerts = append(a.alerts, alert)
	return nil
}

func newTestService(alerter alerts.Alerter) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, passthroughTx{}, alerter), repo
}

func addUniform(repo *fakeRepo, stock, threshold int) id.ID {
	uid := id.New()
	repo.uniforms[uid] = &fakeUniform{
		name:      "Blazer",
		size:      "L",
		stock:     stock,
		threshold: threshold,
	}
	return uid
}

func TestAdjustStock_UpAndDownReturnsToOriginal(t *testing.T) {
	svc, repo := newTestService(nil)
	uniformID := addUniform(repo, 10, 3)

	up, err := svc.AdjustStock(context.Background(), uniformID, 5, "delivery received")
	require.NoError(t, err)
	assert.Equal(t, 15, up.NewStock)

	down, err := svc.AdjustStock(context.Background(), uniformID, -5, "counting error")
	require.NoError(t, err)
	assert.Equal(t, 10, down.NewStock)

	require.Len(t, repo.ledger, 2)
	assert.Equal(t, 5, repo.ledger[0].Delta)
	assert.Equal(t, -5, repo.ledger[1].Delta)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	svc, repo := newTestService(nil)
	uniformID := addUniform(repo, 3, 0)

	_, err := svc.AdjustStock(context.Background(), uniformID, -4, "write-off")
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, 3, repo.uniforms[uniformID].stock)
	assert.Empty(t, repo.ledger, "no ledger row for a rejected adjustment")
}

func TestAdjustStock_ValidatesInput(t *testing.T) {
	svc, repo := newTestService(nil)
	uniformID := addUniform(repo, 10, 3)

	_, err := svc.AdjustStock(context.Background(), uniformID, 0, "nothing")
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.AdjustStock(context.Background(), uniformID, 5, "   ")
	assert.True(t, apperror.IsValidation(err))
}

func TestAdjustStock_AlertFiresOnThresholdCrossing(t *testing.T) {
	alerter := &recordingAlerter{}
	svc, repo := newTestService(alerter)
	uniformID := addUniform(repo, 6, 5)

	// 6 -> 4 crosses below the threshold of 5.
	_, err := svc.AdjustStock(context.Background(), uniformID, -2, "damaged goods")
	require.NoError(t, err)

	require.Len(t, alerter.alerts, 1)
	alert := alerter.alerts[0]
	assert.Equal(t, uniformID, alert.UniformID)
	assert.Equal(t, 4, alert.Stock)
	assert.Equal(t, 5, alert.Threshold)

	// Already below: no second alert for a further drop.
	_, err = svc.AdjustStock(context.Background(), uniformID, -1, "damaged goods")
	require.NoError(t, err)
	assert.Len(t, alerter.alerts, 1)
}

func TestAdjustStock_StockAtThresholdIsNotLow(t *testing.T) {
	alerter := &recordingAlerter{}
	svc, repo := newTestService(alerter)
	uniformID := addUniform(repo, 7, 5)

	// 7 -> 5 lands exactly on the threshold: not low.
	_, err := svc.AdjustStock(context.Background(), uniformID, -2, "damaged goods")
	require.NoError(t, err)
	assert.Empty(t, alerter.alerts)

	// 5 -> 4 crosses.
	_, err = svc.AdjustStock(context.Background(), uniformID, -1, "damaged goods")
	require.NoError(t, err)
	assert.Len(t, alerter.alerts, 1)
}

func TestAdjustStock_AlertFailureDoesNotFailAdjustment(t *testing.T) {
	alerter := &recordingAlerter{err: errors.New("queue unavailable")}
	svc, repo := newTestService(alerter)
	uniformID := addUniform(repo, 6, 5)

	result, err := svc.AdjustStock(context.Background(), uniformID, -2, "damaged goods")
	require.NoError(t, err)
	assert.Equal(t, 4, result.NewStock)
	assert.Equal(t, 4, repo.uniforms[uniformID].stock)
}

func TestUpdateThreshold(t *testing.T) {
	svc, repo := newTestService(nil)
	uniformID := addUniform(repo, 10, 3)

	require.NoError(t, svc.UpdateThreshold(context.Background(), uniformID, 8))
	assert.Equal(t, 8, repo.uniforms[uniformID].threshold)

	err := svc.UpdateThreshold(context.Background(), uniformID, -1)
	assert.True(t, apperror.IsValidation(err))

	err = svc.UpdateThreshold(context.Background(), id.New(), 5)
	assert.True(t, apperror.IsNotFound(err))
}
