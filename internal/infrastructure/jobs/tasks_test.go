package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniformdesk/internal/core/id"
	"uniformdesk/internal/domain/alerts"
)

type fakeMailer struct {
	sent    []string
	subject string
	err     error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.subject = subject
	return nil
}

func testAlert() alerts.LowStockAlert {
	return alerts.LowStockAlert{
		UniformID: id.New(),
		Name:      "Polo Shirt",
		Size:      "M",
		Stock:     2,
		Threshold: 5,
	}
}

func TestLowStockHandler_SendsMail(t *testing.T) {
	task, err := NewLowStockTask(testAlert())
	require.NoError(t, err)
	assert.Equal(t, TaskTypeLowStockAlert, task.Type())

	mailer := &fakeMailer{}
	handler := NewLowStockHandler(mailer, "ops@example.com")

	require.NoError(t, handler(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ops@example.com", mailer.sent[0])
	assert.Equal(t, "Low stock: Polo Shirt (M)", mailer.subject)
}

func TestLowStockHandler_NoRecipientDropsSilently(t *testing.T) {
	task, err := NewLowStockTask(testAlert())
	require.NoError(t, err)

	mailer := &fakeMailer{}
	handler := NewLowStockHandler(mailer, "")

	require.NoError(t, handler(context.Background(), task))
	assert.Empty(t, mailer.sent)
}

func TestLowStockHandler_MailerErrorRetries(t *testing.T) {
	task, err := NewLowStockTask(testAlert())
	require.NoError(t, err)

	mailer := &fakeMailer{err: errors.New("connection refused")}
	handler := NewLowStockHandler(mailer, "ops@example.com")

	err = handler(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestLowStockHandler_BadPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(TaskTypeLowStockAlert, []byte("{not json"))
	handler := NewLowStockHandler(&fakeMailer{}, "ops@example.com")

	err := handler(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
