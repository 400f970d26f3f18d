package service

import (
	"context"
	"errors"
	"testing"

	"alpha_radar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) Send(_ context.Context, text string) error {
	n.messages = append(n.messages, text)
	return n.err
}

type recordingSink struct {
	persisted [][]entity.ScoredCandidate
	err       error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Persist(_ context.Context, c []entity.ScoredCandidate) error {
	s.persisted = append(s.persisted, c)
	return s.err
}

func deliverableResult() *entity.ScanResult {
	ranked := []entity.ScoredCandidate{scored("A", 90), scored("B", 80), scored("C", 70)}
	return &entity.ScanResult{RunID: "run-1", Ranked: ranked, Top: ranked[:2]}
}

func TestDeliver_PersistsRankedAndSendsTop(t *testing.T) {
	n := &recordingNotifier{}
	s := &recordingSink{}
	d := NewDeliveryService(n, s, nopLogger{})

	report := d.Deliver(context.Background(), deliverableResult())
	assert.False(t, report.Skipped)
	assert.NoError(t, report.NotifyErr)
	assert.NoError(t, report.PersistenceErr)

	require.Len(t, s.persisted, 1)
	assert.Len(t, s.persisted[0], 3)
	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "TOP 2 ALPHA DETECTED")
	assert.NotContains(t, n.messages[0], "*3) C*")
}

func TestDeliver_EmptyResultIsSkipped(t *testing.T) {
	n := &recordingNotifier{}
	s := &recordingSink{}
	d := NewDeliveryService(n, s, nopLogger{})

	report := d.Deliver(context.Background(), &entity.ScanResult{RunID: "empty"})
	assert.True(t, report.Skipped)
	assert.Empty(t, n.messages)
	assert.Empty(t, s.persisted)
}

func TestDeliver_NotifyFailureDoesNotBlockPersistence(t *testing.T) {
	n := &recordingNotifier{err: &entity.DeliveryError{Channel: "telegram", Err: errors.New("status 401")}}
	s := &recordingSink{}
	d := NewDeliveryService(n, s, nopLogger{})

	report := d.Deliver(context.Background(), deliverableResult())
	assert.Error(t, report.NotifyErr)
	assert.NoError(t, report.PersistenceErr)
	assert.Len(t, s.persisted, 1)
}

func TestDeliver_PersistenceFailureDoesNotBlockNotify(t *testing.T) {
	n := &recordingNotifier{}
	s := &recordingSink{err: &entity.PersistenceError{Target: "file", Path: "/ro", Err: errors.New("read-only")}}
	d := NewDeliveryService(n, s, nopLogger{})

	report := d.Deliver(context.Background(), deliverableResult())
	assert.Error(t, report.PersistenceErr)
	assert.NoError(t, report.NotifyErr)
	assert.Len(t, n.messages, 1)
}

func TestDeliver_NilCollaboratorsAreDisabled(t *testing.T) {
	d := NewDeliveryService(nil, nil, nopLogger{})
	report := d.Deliver(context.Background(), deliverableResult())
	assert.False(t, report.Skipped)
	assert.NoError(t, report.NotifyErr)
	assert.NoError(t, report.PersistenceErr)
}
