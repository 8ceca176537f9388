package scheduler

import (
	"reflect"
	"testing"

	"github.com/ministryos/scheduler-api-go/pkg/models"
)

func TestAssignByRotation_WorkloadBeatsTie(t *testing.T) {
	now := fixedNow()
	prefs := models.DefaultPreferences()

	profiles := []*models.VolunteerProfile{
		{Volunteer: models.Volunteer{ID: "v1", Name: "Alice", PreferredRole: "sound"}},
		{Volunteer: models.Volunteer{ID: "v2", Name: "Bob", PreferredRole: "sound"}, SchedulesCount: 5},
	}

	assignments := AssignByRotation([]string{"sound"}, profiles, prefs, now)

	if len(assignments) != 1 {
		t.Fatalf("Expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].VolunteerID != "v1" {
		t.Errorf("Expected Alice (lower workload) to win, got %s", assignments[0].VolunteerName)
	}
	if assignments[0].Reason != ReasonPreferredRole {
		t.Errorf("Expected reason %q, got %q", ReasonPreferredRole, assignments[0].Reason)
	}
}

func TestAssignByRotation_RoleOrderPriority(t *testing.T) {
	now := fixedNow()
	prefs := models.DefaultPreferences()

	profiles := []*models.VolunteerProfile{
		{Volunteer: models.Volunteer{ID: "v1", Name: "Alice", PreferredRole: "projection"}},
	}

	assignments := AssignByRotation([]string{"sound", "projection"}, profiles, prefs, now)

	if len(assignments) != 1 {
		t.Fatalf("Expected 1 assignment, got %d", len(assignments))
	}
	// First role in the request wins the only volunteer, even if the second
	// role would have been a better fit.
	if assignments[0].Role != "sound" {
		t.Errorf("Expected the first requested role to be filled, got %q", assignments[0].Role)
	}
}

func TestAssignByRotation_NoDoubleBooking(t *testing.T) {
	now := fixedNow()
	prefs := models.DefaultPreferences()

	profiles := []*models.VolunteerProfile{
		{Volunteer: models.Volunteer{ID: "v1", Name: "Alice"}},
		{Volunteer: models.Volunteer{ID: "v2", Name: "Bob"}},
	}

	assignments := AssignByRotation([]string{"sound", "projection", "greeting"}, profiles, prefs, now)

	if len(assignments) != 2 {
		t.Fatalf("Expected 2 assignments for 2 volunteers, got %d", len(assignments))
	}

	seen := make(map[string]bool)
	for _, a := range assignments {
		if seen[a.VolunteerID] {
			t.Errorf("Volunteer %s assigned twice", a.VolunteerID)
		}
		seen[a.VolunteerID] = true
	}
}

func TestAssignByRotation_Deterministic(t *testing.T) {
	now := fixedNow()
	prefs := models.DefaultPreferences()

	build := func() []*models.VolunteerProfile {
		return []*models.VolunteerProfile{
			{Volunteer: models.Volunteer{ID: "v1", Name: "Alice"}, SchedulesCount: 2},
			{Volunteer: models.Volunteer{ID: "v2", Name: "Bob"}, SchedulesCount: 2},
			{Volunteer: models.Volunteer{ID: "v3", Name: "Carol"}, SchedulesCount: 1},
		}
	}
	roles := []string{"sound", "projection", "greeting"}

	first := AssignByRotation(roles, build(), prefs, now)
	second := AssignByRotation(roles, build(), prefs, now)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical assignments for identical inputs, got %v vs %v", first, second)
	}
}

func TestAssignByRotation_TieBreakIsRosterOrder(t *testing.T) {
	now := fixedNow()
	prefs := models.DefaultPreferences()

	profiles := []*models.VolunteerProfile{
		{Volunteer: models.Volunteer{ID: "v1", Name: "Alice"}},
		{Volunteer: models.Volunteer{ID: "v2", Name: "Bob"}},
	}

	assignments := AssignByRotation([]string{"sound"}, profiles, prefs, now)

	if assignments[0].VolunteerID != "v1" {
		t.Errorf("Expected roster order tiebreak to pick v1, got %s", assignments[0].VolunteerID)
	}
}

func TestAssignByRotation_ReasonStrings(t *testing.T) {
	now := fixedNow()
	prefs := models.DefaultPreferences()

	profiles := []*models.VolunteerProfile{
		{Volunteer: models.Volunteer{ID: "v1", Name: "Alice"}, RolesWorked: []string{"sound"}},
		{Volunteer: models.Volunteer{ID: "v2", Name: "Bob"}},
	}

	assignments := AssignByRotation([]string{"sound", "greeting"}, profiles, prefs, now)

	if assignments[0].Reason != ReasonPriorExperience {
		t.Errorf("Expected reason %q, got %q", ReasonPriorExperience, assignments[0].Reason)
	}
	if assignments[1].Reason != ReasonRotation {
		t.Errorf("Expected reason %q, got %q", ReasonRotation, assignments[1].Reason)
	}
}
