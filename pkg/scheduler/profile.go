package scheduler

import (
	"time"

	"github.com/ministryos/scheduler-api-go/pkg/models"
)

// BuildProfiles derives the per-run volunteer profiles from the roster and the
// windowed schedule history. Profile order follows roster order, which is the
// tiebreak for equal scores.
func BuildProfiles(volunteers []models.Volunteer, history []models.ScheduleRecord) []*models.VolunteerProfile {
	byVolunteer := make(map[string][]models.ScheduleRecord, len(volunteers))
	for _, rec := range history {
		byVolunteer[rec.VolunteerID] = append(byVolunteer[rec.VolunteerID], rec)
	}

	profiles := make([]*models.VolunteerProfile, 0, len(volunteers))
	for _, vol := range volunteers {
		p := &models.VolunteerProfile{Volunteer: vol}

		seen := make(map[string]bool)
		for _, rec := range byVolunteer[vol.ID] {
			p.SchedulesCount++
			if p.LastScheduleDate == nil || rec.ServiceDate.After(*p.LastScheduleDate) {
				d := rec.ServiceDate
				p.LastScheduleDate = &d
			}
			if !seen[rec.Role] {
				seen[rec.Role] = true
				p.RolesWorked = append(p.RolesWorked, rec.Role)
			}
		}

		profiles = append(profiles, p)
	}
	return profiles
}

// HistoryWindowStart returns the lower bound of the history lookback window
func HistoryWindowStart(now time.Time, windowDays int) time.Time {
	return now.AddDate(0, 0, -windowDays)
}
