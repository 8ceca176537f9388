package scheduler

import (
	"sort"
	"time"

	"github.com/ministryos/scheduler-api-go/pkg/models"
)

// AssignByRotation implements the deterministic greedy assignment. Roles are
// filled in the requested order, so earlier roles win scarce volunteers. A
// volunteer is used at most once per run; when no candidates remain the role
// slot is skipped and the caller reports it as unfilled. This path never fails
// and never emits conflicts.
func AssignByRotation(roles []string, profiles []*models.VolunteerProfile, prefs models.Preferences, now time.Time) []models.Assignment {
	used := make(map[string]bool, len(profiles))
	assignments := make([]models.Assignment, 0, len(roles))

	for _, role := range roles {
		candidates := make([]*models.VolunteerProfile, 0, len(profiles))
		for _, p := range profiles {
			if !used[p.ID] {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		// Stable sort keeps roster order as the tiebreak
		sort.SliceStable(candidates, func(i, j int) bool {
			return Score(candidates[i], role, prefs, now) > Score(candidates[j], role, prefs, now)
		})

		best := candidates[0]
		used[best.ID] = true
		assignments = append(assignments, models.Assignment{
			Role:          role,
			VolunteerID:   best.ID,
			VolunteerName: best.Name,
			Reason:        rotationReason(best, role),
		})
	}

	return assignments
}
