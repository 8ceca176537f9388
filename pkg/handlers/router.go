package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with the full route table. Both the standalone
// server and the serverless entry point share it.
func Router(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Ministry Scheduler API",
			"version": "1.2.0",
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Scheduler Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/schedule/generate", h.GenerateSchedule)
		api.POST("/validate", h.ValidateRequest)
		api.GET("/usage", h.GetMyUsage)
		api.POST("/volunteers", h.CreateVolunteer)
		api.GET("/volunteers", h.ListVolunteers)
		api.DELETE("/volunteers/:id", h.DeactivateVolunteer)
		api.GET("/schedules", h.ListScheduleHistory)
		api.GET("/schedules/export", h.ExportSchedulesCSV)
	}

	return r
}
