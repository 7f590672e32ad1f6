package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"TickerDesk/internal/pipeline"
	"TickerDesk/internal/recorder"
)

// Selector runs the dashboard update for a ticker.
type Selector interface {
	HandleSelection(ctx context.Context, ticker string) pipeline.Result
}

// TickerLister exposes the registered tickers.
type TickerLister interface {
	Tickers() []string
	Default() string
}

// StatsSource reports recorded fetch outcomes.
type StatsSource interface {
	Stats(since time.Time) ([]recorder.SourceStats, error)
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type DashboardHandler struct {
	selector Selector
	tickers  TickerLister
	stats    StatsSource
	timeout  time.Duration
}

// NewDashboardHandler creates the dashboard API. stats may be nil.
func NewDashboardHandler(sel Selector, tickers TickerLister, stats StatsSource, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		selector: sel,
		tickers:  tickers,
		stats:    stats,
		timeout:  timeout,
	}
}

// ListTickers handles GET /api/v1/tickers
func (h *DashboardHandler) ListTickers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tickers": h.tickers.Tickers(),
		"default": h.tickers.Default(),
	})
}

// Dashboard handles GET /api/v1/dashboard/:ticker
// Unknown tickers are a well-formed placeholder result, not an error.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	ticker := strings.ToUpper(strings.TrimSpace(c.Params("ticker")))
	res := h.selector.HandleSelection(ctx, ticker)
	return c.JSON(res)
}

// DefaultDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) DefaultDashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	return c.JSON(h.selector.HandleSelection(ctx, h.tickers.Default()))
}

// Diagnostics handles GET /api/v1/diagnostics?hours=24
func (h *DashboardHandler) Diagnostics(c *fiber.Ctx) error {
	if h.stats == nil {
		return fiber.NewError(fiber.StatusNotFound, "diagnostics are disabled")
	}
	hours := c.QueryInt("hours", 24)
	if hours < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid hours",
			Message: "hours must be >= 1",
			Code:    fiber.StatusBadRequest,
		})
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	stats, err := h.stats.Stats(since)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Failed to read diagnostics",
			Message: err.Error(),
			Code:    fiber.StatusInternalServerError,
		})
	}
	if stats == nil {
		stats = []recorder.SourceStats{}
	}
	return c.JSON(fiber.Map{
		"since":   since.UTC(),
		"sources": stats,
	})
}

// Register mounts all routes on app.
func Register(app *fiber.App, dash *DashboardHandler, health *HealthHandler) {
	app.Get("/health", health.Health)

	v1 := app.Group("/api/v1")
	v1.Get("/tickers", dash.ListTickers)
	v1.Get("/dashboard", dash.DefaultDashboard)
	v1.Get("/dashboard/:ticker", dash.Dashboard)
	v1.Get("/diagnostics", dash.Diagnostics)
}

// CustomErrorHandler handles Fiber errors
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
