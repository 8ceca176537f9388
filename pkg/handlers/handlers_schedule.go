package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ministryos/scheduler-api-go/pkg/models"
	"github.com/ministryos/scheduler-api-go/pkg/scheduler"
	"go.uber.org/zap"
)

// GenerateSchedule runs the scheduling engine for the authenticated tenant
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := c.GetString("ownerID")

	result, err := h.Engine.Generate(c.Request.Context(), ownerID, req)
	if err != nil {
		var vErr *scheduler.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Msg})
			return
		}
		h.Log.Error("schedule generation failed",
			zap.String("owner", ownerID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate schedule"})
		return
	}

	h.RecordUsage(c, len(req.Roles), len(result.Assignments))

	c.JSON(http.StatusOK, result)
}

// CreateVolunteer adds a volunteer to the tenant's roster
func (h *Handler) CreateVolunteer(c *gin.Context) {
	var req models.Volunteer
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ownerID := c.GetString("ownerID")
	created, err := h.Roster.CreateVolunteer(c.Request.Context(), ownerID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create volunteer"})
		return
	}

	c.JSON(http.StatusOK, created)
}

// ListVolunteers returns the tenant's active roster
func (h *Handler) ListVolunteers(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	volunteers, err := h.Roster.ListActiveVolunteers(c.Request.Context(), ownerID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch volunteers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"volunteers": volunteers})
}

// DeactivateVolunteer removes a volunteer from future scheduling runs
func (h *Handler) DeactivateVolunteer(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	if err := h.Roster.DeactivateVolunteer(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not deactivate volunteer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Volunteer deactivated"})
}

// ListScheduleHistory returns the tenant's schedule records inside the
// engine's lookback window.
func (h *Handler) ListScheduleHistory(c *gin.Context) {
	ownerID := c.GetString("ownerID")
	since := scheduler.HistoryWindowStart(time.Now(), h.Cfg.HistoryWindowDays)
	records, err := h.Roster.ListScheduleHistory(c.Request.Context(), ownerID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch schedule history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": records})
}
