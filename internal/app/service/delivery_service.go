package service

import (
	"context"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"
	"alpha_radar/internal/pkg/metrics"
)

// deliveryServiceImpl implements port.DeliveryService.
type deliveryServiceImpl struct {
	notifier port.Notifier
	sink     port.SnapshotSink
	logger   port.Logger
}

// NewDeliveryService creates a delivery service. Either collaborator may be nil to disable it.
func NewDeliveryService(notifier port.Notifier, sink port.SnapshotSink, logger port.Logger) port.DeliveryService {
	return &deliveryServiceImpl{notifier: notifier, sink: sink, logger: logger}
}

// Deliver persists the ranked list and sends the top list. The two steps are
// independent: a failure in one is logged and never blocks the other.
func (d *deliveryServiceImpl) Deliver(ctx context.Context, result *entity.ScanResult) port.DeliveryReport {
	var report port.DeliveryReport
	if result.Empty() {
		d.logger.Info("Nothing to deliver, skipping notification and persistence")
		report.Skipped = true
		return report
	}

	if d.sink != nil {
		report.PersistenceErr = d.sink.Persist(ctx, result.Ranked)
		metrics.DeliveriesTotal.WithLabelValues(d.sink.Name(), metrics.Outcome(report.PersistenceErr)).Inc()
		if report.PersistenceErr != nil {
			d.logger.Error("Snapshot persistence failed", "run_id", result.RunID, "error", report.PersistenceErr)
		} else {
			d.logger.Info("Snapshot persisted", "run_id", result.RunID, "count", len(result.Ranked))
		}
	}

	if d.notifier != nil {
		report.NotifyErr = d.notifier.Send(ctx, FormatTopMessage(result.Top))
		metrics.DeliveriesTotal.WithLabelValues("telegram", metrics.Outcome(report.NotifyErr)).Inc()
		if report.NotifyErr != nil {
			d.logger.Error("Could not send top list to Telegram", "run_id", result.RunID, "error", report.NotifyErr)
		} else {
			d.logger.Info("Top list sent to Telegram", "run_id", result.RunID, "count", len(result.Top))
		}
	}
	return report
}
