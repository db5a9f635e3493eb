package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parking-maintenance-backend/internal/reservation"
)

type createReservationRequest struct {
	SubscriberID int64  `json:"subscriber_id" binding:"required"`
	SpotID       int64  `json:"spot_id" binding:"required"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

type reservationResponse struct {
	ID           int64   `json:"id"`
	SubscriberID int64   `json:"subscriber_id"`
	SpotID       int64   `json:"spot_id"`
	Date         string  `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Code         int     `json:"code"`
}

// CreateReservation validates and books a spot for a future day.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// An empty date is left zero so validation reports it as missing.
	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.ParseInLocation(time.DateOnly, req.Date, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}
	}

	r, err := h.reservations.Create(c.Request.Context(), reservation.Request{
		SubscriberID: req.SubscriberID,
		SpotID:       req.SpotID,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}, h.now().In(h.loc))

	var invalid *reservation.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Reason.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reservationResponse{
		ID:           r.ID,
		SubscriberID: r.SubscriberID,
		SpotID:       r.SpotID,
		Date:         r.Date.Format(time.DateOnly),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Code:         r.Code,
	})
}
