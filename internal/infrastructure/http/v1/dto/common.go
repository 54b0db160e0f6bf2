// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"uniformdesk/internal/core/apperror"
)

// DateRangeQuery narrows listings and aggregates by creation date.
// Dates come in as YYYY-MM-DD; the end date is inclusive, so the
// filter upper bound is the start of the following day.
type DateRangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

const dateLayout = "2006-01-02"

// Range parses the query into half-open [from, to) bounds.
func (q *DateRangeQuery) Range() (from, to *time.Time, err error) {
	if q.StartDate != "" {
		t, parseErr := time.ParseInLocation(dateLayout, q.StartDate, time.Local)
		if parseErr != nil {
			return nil, nil, apperror.NewValidation("invalid startDate, expected YYYY-MM-DD").
				WithDetail("startDate", q.StartDate)
		}
		from = &t
	}
	if q.EndDate != "" {
		t, parseErr := time.ParseInLocation(dateLayout, q.EndDate, time.Local)
		if parseErr != nil {
			return nil, nil, apperror.NewValidation("invalid endDate, expected YYYY-MM-DD").
				WithDetail("endDate", q.EndDate)
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, nil
}

// MessageResponse wraps a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
