package numerator

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences upsert.
type mockQuerier struct {
	mu   sync.Mutex
	vals map[string]int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vals == nil {
		m.vals = make(map[string]int64)
	}
	key, _ := args[0].(string)
	m.vals[key]++
	return &mockRow{val: m.vals[key]}
}

func TestNext_Sequential(t *testing.T) {
	svc := New(&mockQuerier{})
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := svc.Next(ctx, "test")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNext_IndependentKeys(t *testing.T) {
	svc := New(&mockQuerier{})
	ctx := context.Background()

	a, err := svc.Next(ctx, "a")
	require.NoError(t, err)
	b, err := svc.Next(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(1), b)
}

func TestNext_EmptyKey(t *testing.T) {
	svc := New(&mockQuerier{})
	_, err := svc.Next(context.Background(), "")
	assert.Error(t, err)
}

func TestNextBarcode_Format(t *testing.T) {
	svc := New(&mockQuerier{})
	ctx := context.Background()

	code, err := svc.NextBarcode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "200000000001", code)
	assert.Len(t, code, 12)

	code, err = svc.NextBarcode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "200000000002", code)
}
