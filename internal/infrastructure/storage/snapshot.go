package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotTimeLayout names timestamped snapshots with UTC second precision.
const SnapshotTimeLayout = "20060102_150405"

// EncodeSnapshot serializes the ranked list as an indented JSON array.
// An empty list encodes as [] rather than null.
func EncodeSnapshot(candidates []entity.ScoredCandidate) ([]byte, error) {
	if candidates == nil {
		candidates = []entity.ScoredCandidate{}
	}
	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// SnapshotName returns the file or object name for a run at t.
func SnapshotName(t time.Time) string {
	return "alpha_" + t.UTC().Format(SnapshotTimeLayout) + "Z.json"
}

// MultiSink fans a snapshot out to several sinks. Every sink is attempted;
// failures are joined so callers can still match *entity.PersistenceError.
type MultiSink struct {
	sinks  []port.SnapshotSink
	logger port.Logger
}

// NewMultiSink skips nil sinks.
func NewMultiSink(logger port.Logger, sinks ...port.SnapshotSink) *MultiSink {
	m := &MultiSink{logger: logger}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Name implements port.SnapshotSink.
func (m *MultiSink) Name() string { return "snapshot" }

// Persist implements port.SnapshotSink.
func (m *MultiSink) Persist(ctx context.Context, candidates []entity.ScoredCandidate) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Persist(ctx, candidates); err != nil {
			m.logger.Warn("Snapshot sink failed", "sink", s.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		m.logger.Debug("Snapshot sink succeeded", "sink", s.Name(), "count", len(candidates))
	}
	return errors.Join(errs...)
}
