package sales

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniformdesk/internal/core/apperror"
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
)

// fakeRepo keeps sales state in memory. Its companion tx manager
// snapshots the state before each transaction and restores it on
// error, mirroring database rollback.
type fakeRepo struct {
	mu       sync.Mutex
	schools  map[id.ID]bool
	uniforms map[id.ID]*UniformLine
	sales    map[id.ID]*Sale
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		schools:  make(map[id.ID]bool),
		uniforms: make(map[id.ID]*UniformLine),
		sales:    make(map[id.ID]*Sale),
	}
}

func (r *fakeRepo) SchoolExists(_ context.Context, schoolID id.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.schools[schoolID], nil
}

func (r *fakeRepo) GetUniformLine(_ context.Context, uniformID id.ID) (*UniformLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.uniforms[uniformID]
	if !ok {
		return nil, apperror.NewNotFound("uniform", uniformID.String())
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) DecrementStock(_ context.Context, uniformID id.ID, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.uniforms[uniformID]
	if !ok || u.Stock < qty {
		return false, nil
	}
	u.Stock -= qty
	return true, nil
}

func (r *fakeRepo) IncrementStock(_ context.Context, uniformID id.ID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.uniforms[uniformID]
	if !ok {
		return apperror.NewNotFound("uniform", uniformID.String())
	}
	u.Stock += qty
	return nil
}

func (r *fakeRepo) CreateSale(_ context.Context, s *Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.sales[s.ID] = &copied
	return nil
}

func (r *fakeRepo) GetSale(_ context.Context, saleID id.ID) (*Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[saleID]
	if !ok {
		return nil, apperror.NewNotFound("sale", saleID.String())
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) DeleteSale(_ context.Context, saleID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sales[saleID]; !ok {
		return apperror.NewNotFound("sale", saleID.String())
	}
	delete(r.sales, saleID)
	return nil
}

func (r *fakeRepo) Aggregate(_ context.Context, _ Filter, _ int) (*Aggregate, error) {
	return &Aggregate{TotalSales: types.Zero()}, nil
}

func (r *fakeRepo) ListDetailed(_ context.Context, _ Filter) ([]DetailedSale, error) {
	return nil, nil
}

func (r *fakeRepo) stockOf(uniformID id.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uniforms[uniformID].Stock
}

func (r *fakeRepo) snapshot() map[id.ID]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	stocks := make(map[id.ID]int, len(r.uniforms))
	for uid, u := range r.uniforms {
		stocks[uid] = u.Stock
	}
	return stocks
}

func (r *fakeRepo) restore(stocks map[id.ID]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uid, stock := range stocks {
		r.uniforms[uid].Stock = stock
	}
}

// fakeTxManager serializes transactions and rolls stock back when the
// function fails, the way the real transaction manager would.
type fakeTxManager struct {
	mu   sync.Mutex
	repo *fakeRepo
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := m.repo.snapshot()
	if err := fn(ctx); err != nil {
		m.repo.restore(before)
		return err
	}
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, &fakeTxManager{repo: repo}), repo
}

func addUniform(repo *fakeRepo, cost string, stock int) id.ID {
	uid := id.New()
	repo.uniforms[uid] = &UniformLine{
		ID:        uid,
		Name:      "Polo Shirt",
		CostPrice: types.MustMoney(cost),
		Stock:     stock,
	}
	return uid
}

func addSchool(repo *fakeRepo) id.ID {
	sid := id.New()
	repo.schools[sid] = true
	return sid
}

func TestCheckout_TotalsAndProfit(t *testing.T) {
	svc, repo := newTestService()
	schoolID := addSchool(repo)
	uniformID := addUniform(repo, "60", 10)

	sale, err := svc.Checkout(context.Background(), CheckoutRequest{
		SchoolID: schoolID,
		Lines: []CartLine{
			{UniformID: uniformID, Quantity: 3, UnitPrice: types.MustMoney("100")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, repo.stockOf(uniformID))
	assert.True(t, sale.Total.Equal(types.MustMoney("300")), "total = %s", sale.Total)
	assert.True(t, sale.Profit.Equal(types.MustMoney("120")), "profit = %s", sale.Profit)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)

	stored, err := repo.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(sale.Total))
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, repo := newTestService()
	schoolID := addSchool(repo)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{SchoolID: schoolID})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeEmptyCart, appErr.Code)
	assert.Empty(t, repo.sales)
}

func TestCheckout_UnknownSchool(t *testing.T) {
	svc, repo := newTestService()
	uniformID := addUniform(repo, "60", 10)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		SchoolID: id.New(),
		Lines: []CartLine{
			{UniformID: uniformID, Quantity: 1, UnitPrice: types.MustMoney("100")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, 10, repo.stockOf(uniformID))
}

func TestCheckout_InsufficientStockLeavesNoPartialEffects(t *testing.T) {
	svc, repo := newTestService()
	schoolID := addSchool(repo)
	first := addUniform(repo, "60", 10)
	second := addUniform(repo, "60", 1)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		SchoolID: schoolID,
		Lines: []CartLine{
			{UniformID: first, Quantity: 2, UnitPrice: types.MustMoney("100")},
			{UniformID: second, Quantity: 5, UnitPrice: types.MustMoney("100")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// The first line's decrement rolled back with the transaction.
	assert.Equal(t, 10, repo.stockOf(first))
	assert.Equal(t, 1, repo.stockOf(second))
	assert.Empty(t, repo.sales)
}

func TestCheckout_DuplicateCartLines(t *testing.T) {
	svc, repo := newTestService()
	schoolID := addSchool(repo)
	uniformID := addUniform(repo, "60", 10)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		SchoolID: schoolID,
		Lines: []CartLine{
			{UniformID: uniformID, Quantity: 1, UnitPrice: types.MustMoney("100")},
			{UniformID: uniformID, Quantity: 2, UnitPrice: types.MustMoney("100")},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 10, repo.stockOf(uniformID))
}

func TestDelete_RestoresStock(t *testing.T) {
	svc, repo := newTestService()
	schoolID := addSchool(repo)
	uniformID := addUniform(repo, "60", 10)

	sale, err := svc.Checkout(context.Background(), CheckoutRequest{
		SchoolID: schoolID,
		Lines: []CartLine{
			{UniformID: uniformID, Quantity: 4, UnitPrice: types.MustMoney("100")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, repo.stockOf(uniformID))

	require.NoError(t, svc.Delete(context.Background(), sale.ID))

	assert.Equal(t, 10, repo.stockOf(uniformID))
	assert.Empty(t, repo.sales)

	err = svc.Delete(context.Background(), sale.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCheckout_ConcurrentSalesNeverOversell(t *testing.T) {
	svc, repo := newTestService()
	schoolID := addSchool(repo)
	uniformID := addUniform(repo, "60", 5)

	run := func(results chan<- error) {
		_, err := svc.Checkout(context.Background(), CheckoutRequest{
			SchoolID: schoolID,
			Lines: []CartLine{
				{UniformID: uniformID, Quantity: 3, UnitPrice: types.MustMoney("100")},
			},
		})
		results <- err
	}

	results := make(chan error, 2)
	go run(results)
	go run(results)

	var failures, successes int
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			assert.True(t, apperror.IsInsufficientStock(err))
			failures++
		} else {
			successes++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 2, repo.stockOf(uniformID))
	assert.Len(t, repo.sales, 1)
}
