package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniformdesk/internal/core/apperror"
)

func TestDateRangeQuery_Range(t *testing.T) {
	t.Run("empty query means no bounds", func(t *testing.T) {
		var q DateRangeQuery
		from, to, err := q.Range()
		require.NoError(t, err)
		assert.Nil(t, from)
		assert.Nil(t, to)
	})

	t.Run("end date is inclusive", func(t *testing.T) {
		q := DateRangeQuery{StartDate: "2026-08-01", EndDate: "2026-08-28"}
		from, to, err := q.Range()
		require.NoError(t, err)
		require.NotNil(t, from)
		require.NotNil(t, to)

		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local), *from)
		// Upper bound is the start of the day after endDate, so the
		// whole end day falls inside the filter.
		assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local), *to)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		q := DateRangeQuery{StartDate: "28/08/2026"}
		_, _, err := q.Range()
		assert.True(t, apperror.IsValidation(err))

		q = DateRangeQuery{EndDate: "yesterday"}
		_, _, err = q.Range()
		assert.True(t, apperror.IsValidation(err))
	})
}
