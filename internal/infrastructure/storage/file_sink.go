package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"
	"alpha_radar/internal/pkg/utils"
)

const fileTarget = "file"

// FileSink writes one timestamped snapshot per run into reportsDir and
// atomically replaces the well-known latest file.
type FileSink struct {
	reportsDir string
	latestPath string
	logger     port.Logger
	now        func() time.Time
}

func NewFileSink(reportsDir, latestPath string, logger port.Logger) *FileSink {
	return &FileSink{
		reportsDir: reportsDir,
		latestPath: latestPath,
		logger:     logger,
		now:        time.Now,
	}
}

// Name implements port.SnapshotSink.
func (s *FileSink) Name() string { return fileTarget }

// Persist implements port.SnapshotSink. Both files are attempted even when the first write fails.
func (s *FileSink) Persist(_ context.Context, candidates []entity.ScoredCandidate) error {
	data, err := EncodeSnapshot(candidates)
	if err != nil {
		return &entity.PersistenceError{Target: fileTarget, Path: s.reportsDir, Err: err}
	}

	var errs []error
	snapshotPath := filepath.Join(s.reportsDir, SnapshotName(s.now()))
	if err := writeNewFile(snapshotPath, data); err != nil {
		errs = append(errs, &entity.PersistenceError{Target: fileTarget, Path: snapshotPath, Err: err})
	} else {
		s.logger.Info("Snapshot written", "path", snapshotPath, "count", len(candidates))
	}

	if err := utils.WriteFileAtomic(s.latestPath, data, 0o644); err != nil {
		errs = append(errs, &entity.PersistenceError{Target: fileTarget, Path: s.latestPath, Err: err})
	} else {
		s.logger.Info("Latest snapshot updated", "path", s.latestPath)
	}
	return errors.Join(errs...)
}

// writeNewFile refuses to overwrite an existing snapshot.
func writeNewFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
