package port

import (
	"context"

	"alpha_radar/internal/domain/entity"
)

// ScannerService runs the fetch, filter, score, and rank pipeline.
type ScannerService interface {
	// Scan executes one run. Fetch failures are recorded on the result; only a
	// *entity.ConfigError is returned as an error.
	Scan(ctx context.Context) (*entity.ScanResult, error)

	// LastResult returns the most recent completed run, if any.
	LastResult() (*entity.ScanResult, bool)
}

// DeliveryService hands a finished run to the notifier and the snapshot sinks.
type DeliveryService interface {
	Deliver(ctx context.Context, result *entity.ScanResult) DeliveryReport
}

// DeliveryReport holds the independent outcomes of notification and persistence.
type DeliveryReport struct {
	Skipped        bool
	NotifyErr      error
	PersistenceErr error
}
