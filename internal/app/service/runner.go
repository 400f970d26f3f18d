package service

import (
	"context"
	"sync"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"
)

// Runner executes a scan and hands the result to delivery. Concurrent calls
// are serialized so a manual trigger never overlaps a scheduled run.
type Runner struct {
	scanner  port.ScannerService
	delivery port.DeliveryService
	logger   port.Logger
	mu       sync.Mutex
}

func NewRunner(scanner port.ScannerService, delivery port.DeliveryService, logger port.Logger) *Runner {
	return &Runner{scanner: scanner, delivery: delivery, logger: logger}
}

// RunOnce scans and delivers. Only a *entity.ConfigError (or cancellation) is returned;
// delivery and persistence failures are reported in the DeliveryReport.
func (r *Runner) RunOnce(ctx context.Context) (*entity.ScanResult, port.DeliveryReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.scanner.Scan(ctx)
	if err != nil {
		return nil, port.DeliveryReport{}, err
	}
	if result.Empty() {
		r.logger.Info("Run finished with zero opportunities", "run_id", result.RunID)
		return result, port.DeliveryReport{Skipped: true}, nil
	}
	return result, r.delivery.Deliver(ctx, result), nil
}

