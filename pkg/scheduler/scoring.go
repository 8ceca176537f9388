package scheduler

import (
	"time"

	"github.com/ministryos/scheduler-api-go/pkg/models"
)

// Reason strings attached to rotation assignments.
const (
	ReasonPreferredRole   = "Função preferencial do voluntário"
	ReasonPriorExperience = "Experiência anterior nesta função"
	ReasonRotation        = "Selecionado por rotação"
)

// Score computes the rotation fitness of a volunteer for a role. Higher is
// better. The same rule set is encoded in natural language for the AI path so
// both paths stay comparable.
func Score(p *models.VolunteerProfile, role string, prefs models.Preferences, now time.Time) float64 {
	score := 0.0

	if prefs.RespectRolePreferences && p.PreferredRole == role {
		score += 100
	}

	if prefs.BalanceWorkload {
		// Linear penalty, unbounded below
		score -= 5 * float64(p.SchedulesCount)
	}

	if prefs.AvoidConsecutiveWeeks && p.LastScheduleDate != nil {
		daysSince := int(now.Sub(*p.LastScheduleDate).Hours() / 24)
		if daysSince < 7 {
			score -= 50
		} else {
			// Reward longer gaps, capped so inactive volunteers don't run away
			if daysSince > 30 {
				daysSince = 30
			}
			score += float64(daysSince)
		}
	}

	if p.HasWorkedRole(role) {
		score += 20
	}

	return score
}

// rotationReason explains why a volunteer was picked for a role
func rotationReason(p *models.VolunteerProfile, role string) string {
	if p.PreferredRole == role {
		return ReasonPreferredRole
	}
	if p.HasWorkedRole(role) {
		return ReasonPriorExperience
	}
	return ReasonRotation
}
