package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ministryos/scheduler-api-go/pkg/models"
	"github.com/ministryos/scheduler-api-go/pkg/scheduler"
)

// ValidateRequest checks an AssignmentRequest without running the engine
func (h *Handler) ValidateRequest(c *gin.Context) {
	var req models.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if _, err := time.Parse(scheduler.ServiceDateLayout, req.ServiceDate); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "service_date must be formatted as YYYY-MM-DD",
		})
		return
	}

	if len(req.Roles) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one role is required",
		})
		return
	}

	// Duplicate roles are legitimate (two slots of the same role); duplicate
	// ids in the allow-list are not.
	volIDs := make(map[string]bool)
	for _, id := range req.VolunteerIDs {
		if volIDs[id] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate volunteer ID: " + id})
			return
		}
		volIDs[id] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"role_count":      len(req.Roles),
			"volunteer_count": len(req.VolunteerIDs),
			"ai_requested":    req.UseAIOptimization,
		},
	})
}
