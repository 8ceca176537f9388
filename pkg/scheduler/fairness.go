package scheduler

import (
	"math"

	"github.com/ministryos/scheduler-api-go/pkg/models"
)

// FairnessScore returns a percentage (0-100) representing how evenly recent
// service load is distributed across the roster once this run's assignments
// are counted. 100% is perfectly fair (standard deviation = 0).
func FairnessScore(profiles []*models.VolunteerProfile, assignments []models.Assignment) float64 {
	if len(profiles) == 0 {
		return 100.0
	}

	assigned := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.VolunteerID] = true
	}

	var sum float64
	counts := make([]float64, 0, len(profiles))
	for _, p := range profiles {
		c := float64(p.SchedulesCount)
		if assigned[p.ID] {
			c++
		}
		counts = append(counts, c)
		sum += c
	}

	if sum == 0 {
		return 100.0 // Everyone having 0 schedules is perfectly fair
	}

	mean := sum / float64(len(counts))

	var varianceSum float64
	for _, c := range counts {
		diff := c - mean
		varianceSum += diff * diff
	}
	variance := varianceSum / float64(len(counts))
	stdDev := math.Sqrt(variance)

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
