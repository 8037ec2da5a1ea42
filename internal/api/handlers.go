package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellsgz/pingpong/internal/config"
	"github.com/wellsgz/pingpong/internal/report"
)

// Version is reported by the status endpoint
const Version = "0.1.0"

// Handler holds dependencies for API handlers
type Handler struct {
	config    *config.Config
	hub       *Hub
	startTime time.Time
}

// NewHandler creates a new Handler
func NewHandler(cfg *config.Config, hub *Hub) *Handler {
	return &Handler{
		config:    cfg,
		hub:       hub,
		startTime: time.Now(),
	}
}

// StatusResponse represents the response for the status endpoint
type StatusResponse struct {
	Status     string  `json:"status"`
	Uptime     string  `json:"uptime"`
	UptimeSecs float64 `json:"uptime_secs"`
	Target     string  `json:"target"`
	Version    string  `json:"version"`
}

// GetStatus returns the current system status
func (h *Handler) GetStatus(c *gin.Context) {
	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, StatusResponse{
		Status:     "ok",
		Uptime:     uptime.Round(time.Second).String(),
		UptimeSecs: uptime.Seconds(),
		Target:     targetString(h.config.Target),
		Version:    Version,
	})
}

// StatsResponse wraps the latest snapshot
type StatsResponse struct {
	Target     string           `json:"target"`
	Ready      bool             `json:"ready"`
	Snapshot   *report.Snapshot `json:"snapshot,omitempty"`
	PacketLoss string           `json:"packet_loss,omitempty"`
}

// GetStats returns the most recently rendered snapshot
func (h *Handler) GetStats(c *gin.Context) {
	response := StatsResponse{Target: targetString(h.config.Target)}

	if snap, ok := h.hub.Latest(); ok {
		response.Ready = true
		response.Snapshot = &snap
		response.PacketLoss = report.FormatPercent(snap.PacketLoss)
	}

	c.JSON(http.StatusOK, response)
}

// GetConfig returns the current configuration (read-only)
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"target": gin.H{
			"address": h.config.Target.Address,
			"port":    h.config.Target.Port,
		},
		"probe": gin.H{
			"timeout": h.config.Probe.Timeout.String(),
		},
		"report": gin.H{
			"interval": h.config.Report.Interval.String(),
		},
		"stats": gin.H{
			"capacity": h.config.Stats.Capacity,
		},
	})
}
