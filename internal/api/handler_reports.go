package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parking-maintenance-backend/internal/report"
)

// ListReports returns every persisted report, newest first.
func (h *Handler) ListReports(c *gin.Context) {
	entries, err := h.reports.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": entries})
}

// GetReport returns a report as a file-transfer envelope.
func (h *Handler) GetReport(c *gin.Context) {
	env, err := h.reports.Open(c.Param("name"))
	if errors.Is(err, report.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, env)
}

type monthlyReportRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=9999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// GenerateMonthlyReport (re)builds the report of a given month.
func (h *Handler) GenerateMonthlyReport(c *gin.Context) {
	var req monthlyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p := report.Period{Year: req.Year, Month: time.Month(req.Month)}
	if report.MonthOf(h.now().In(h.loc)).Before(p) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month has not started yet"})
		return
	}

	name, err := h.generator.Monthly(c.Request.Context(), p)
	if err != nil {
		log.Printf("Error generating report for %s: %v", p.Label(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": name})
}

// GenerateSnapshotReport builds a month-to-date report for today.
func (h *Handler) GenerateSnapshotReport(c *gin.Context) {
	name, err := h.generator.Snapshot(c.Request.Context(), h.now().In(h.loc))
	if err != nil {
		log.Printf("Error generating snapshot report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": name})
}
