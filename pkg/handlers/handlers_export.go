package handlers

import (
	"encoding/csv"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ministryos/scheduler-api-go/pkg/scheduler"
)

// ExportSchedulesCSV exports the tenant's schedule history inside the lookback
// window as CSV, wrapped in JSON for parity with the generate endpoint.
func (h *Handler) ExportSchedulesCSV(c *gin.Context) {
	ownerID := c.GetString("ownerID")

	since := scheduler.HistoryWindowStart(time.Now(), h.Cfg.HistoryWindowDays)
	records, err := h.Roster.ListScheduleHistory(c.Request.Context(), ownerID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch schedule history"})
		return
	}

	volunteers, err := h.Roster.ListActiveVolunteers(c.Request.Context(), ownerID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch volunteers"})
		return
	}
	names := make(map[string]string, len(volunteers))
	for _, v := range volunteers {
		names[v.ID] = v.Name
	}

	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)
	writer.Write([]string{"schedule_id", "volunteer_id", "volunteer_name", "role", "service_date", "status"})

	for _, rec := range records {
		writer.Write([]string{
			rec.ID,
			rec.VolunteerID,
			names[rec.VolunteerID],
			rec.Role,
			rec.ServiceDate.Format(scheduler.ServiceDateLayout),
			string(rec.Status),
		})
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{"csv": outCSV.String()})
}
