package service

import (
	"context"
	"testing"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanner struct {
	result *entity.ScanResult
	err    error
}

func (s stubScanner) Scan(context.Context) (*entity.ScanResult, error) { return s.result, s.err }
func (s stubScanner) LastResult() (*entity.ScanResult, bool)           { return s.result, s.result != nil }

type countingDelivery struct{ calls int }

func (d *countingDelivery) Deliver(context.Context, *entity.ScanResult) port.DeliveryReport {
	d.calls++
	return port.DeliveryReport{}
}

func TestRunner_DeliversNonEmptyResult(t *testing.T) {
	d := &countingDelivery{}
	r := NewRunner(stubScanner{result: deliverableResult()}, d, nopLogger{})

	result, report, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, 1, d.calls)
}

func TestRunner_EmptyResultSkipsDelivery(t *testing.T) {
	d := &countingDelivery{}
	r := NewRunner(stubScanner{result: &entity.ScanResult{RunID: "empty"}}, d, nopLogger{})

	_, report, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Zero(t, d.calls)
}

func TestRunner_ConfigErrorStopsRun(t *testing.T) {
	d := &countingDelivery{}
	cfgErr := &entity.ConfigError{Document: "scoring.yaml", Err: entity.ErrMissingKey}
	r := NewRunner(stubScanner{err: cfgErr}, d, nopLogger{})

	_, _, err := r.RunOnce(context.Background())
	assert.ErrorIs(t, err, entity.ErrMissingKey)
	assert.Zero(t, d.calls)
}
