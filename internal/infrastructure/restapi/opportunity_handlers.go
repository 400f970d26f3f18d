package restapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"alpha_radar/internal/app/port"
	"alpha_radar/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// ScanTrigger runs one scan-and-deliver cycle.
type ScanTrigger interface {
	RunOnce(ctx context.Context) (*entity.ScanResult, port.DeliveryReport, error)
}

// APIOpportunitiesResponse is the body of GET /api/v1/opportunities.
type APIOpportunitiesResponse struct {
	Data struct {
		RunID         string                   `json:"run_id,omitempty"`
		FinishedAt    *time.Time               `json:"finished_at,omitempty"`
		Opportunities []entity.ScoredCandidate `json:"opportunities"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIScanResponse is the body of the scan endpoints.
type APIScanResponse struct {
	Data          *entity.ScanResult `json:"data,omitempty"`
	Delivery      *DeliveryStatus    `json:"delivery,omitempty"`
	StatusMessage string             `json:"status_message"`
}

// DeliveryStatus reports delivery outcomes as strings.
type DeliveryStatus struct {
	Skipped      bool   `json:"skipped"`
	NotifyError  string `json:"notify_error,omitempty"`
	PersistError string `json:"persist_error,omitempty"`
}

// OpportunityHandler serves the latest scan results.
type OpportunityHandler struct {
	scanner  port.ScannerService
	trigger  ScanTrigger
	registry port.ChainRegistry
	logger   port.Logger
	timeout  time.Duration
}

// NewOpportunityHandler creates the handler. trigger may be nil to disable POST /scans.
func NewOpportunityHandler(scanner port.ScannerService, trigger ScanTrigger, registry port.ChainRegistry, logger port.Logger, timeout time.Duration) *OpportunityHandler {
	return &OpportunityHandler{
		scanner:  scanner,
		trigger:  trigger,
		registry: registry,
		logger:   logger,
		timeout:  timeout,
	}
}

// GetOpportunitiesHandler returns the ranked list of the last run, optionally limited by ?limit=N.
func (h *OpportunityHandler) GetOpportunitiesHandler(c *gin.Context) {
	var response APIOpportunitiesResponse
	response.Data.Opportunities = []entity.ScoredCandidate{}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.StatusMessage = "limit must be a non-negative integer."
			c.JSON(http.StatusBadRequest, response)
			return
		}
		limit = n
	}

	result, ok := h.scanner.LastResult()
	if !ok {
		response.StatusMessage = "No scan has completed yet."
		c.JSON(http.StatusOK, response)
		return
	}

	ranked := result.Ranked
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	if ranked != nil {
		response.Data.Opportunities = ranked
	}
	response.Data.RunID = result.RunID
	finished := result.FinishedAt
	response.Data.FinishedAt = &finished

	if len(ranked) == 0 {
		response.StatusMessage = "Last scan found no opportunities."
	} else {
		response.StatusMessage = "Opportunities retrieved successfully."
	}
	c.JSON(http.StatusOK, response)
}

// GetLatestScanHandler returns the summary of the last run.
func (h *OpportunityHandler) GetLatestScanHandler(c *gin.Context) {
	result, ok := h.scanner.LastResult()
	if !ok {
		c.JSON(http.StatusNotFound, APIScanResponse{StatusMessage: "No scan has completed yet."})
		return
	}
	c.JSON(http.StatusOK, APIScanResponse{Data: result, StatusMessage: "Latest scan retrieved successfully."})
}

// TriggerScanHandler runs a scan synchronously and delivers its result.
func (h *OpportunityHandler) TriggerScanHandler(c *gin.Context) {
	if h.trigger == nil {
		c.JSON(http.StatusNotImplemented, APIScanResponse{StatusMessage: "Manual scans are disabled."})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, report, err := h.trigger.RunOnce(ctx)
	if err != nil {
		h.logger.Error("Manual scan failed", "error", err)
		status := http.StatusInternalServerError
		if entity.IsConfigError(err) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, APIScanResponse{StatusMessage: err.Error()})
		return
	}

	delivery := &DeliveryStatus{Skipped: report.Skipped}
	if report.NotifyErr != nil {
		delivery.NotifyError = report.NotifyErr.Error()
	}
	if report.PersistenceErr != nil {
		delivery.PersistError = report.PersistenceErr.Error()
	}

	msg := "Scan completed."
	if result.Empty() {
		msg = "Scan completed with no opportunities."
	} else if report.NotifyErr != nil || report.PersistenceErr != nil {
		msg = "Scan completed. Some deliveries failed."
	}
	c.JSON(http.StatusOK, APIScanResponse{Data: result, Delivery: delivery, StatusMessage: msg})
}

// GetChainsHandler lists the allowlisted chains.
func (h *OpportunityHandler) GetChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": h.registry.GetAllChainDefinitions()})
}

// HealthHandler reports liveness and the last run id.
func (h *OpportunityHandler) HealthHandler(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if result, ok := h.scanner.LastResult(); ok {
		body["last_run_id"] = result.RunID
		body["last_finished_at"] = result.FinishedAt
	}
	c.JSON(http.StatusOK, body)
}
