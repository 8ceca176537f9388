package models

import "time"

// ScheduleStatus is the lifecycle state of a schedule record.
type ScheduleStatus string

const (
	StatusScheduled   ScheduleStatus = "scheduled"
	StatusConfirmed   ScheduleStatus = "confirmed"
	StatusAbsent      ScheduleStatus = "absent"
	StatusSubstituted ScheduleStatus = "substituted"
)

// Volunteer represents a person eligible for service roles
type Volunteer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	PreferredRole string `json:"preferred_role,omitempty"`
	Active        bool   `json:"active"`
}

// ScheduleRecord represents a past or newly created assignment
type ScheduleRecord struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	VolunteerID string         `json:"volunteer_id"`
	ServiceDate time.Time      `json:"service_date"`
	ServiceName string         `json:"service_name,omitempty"`
	Role        string         `json:"role"`
	Status      ScheduleStatus `json:"status"`
}

// VolunteerProfile is the per-run view of a volunteer plus their recent history
type VolunteerProfile struct {
	Volunteer
	SchedulesCount   int        `json:"schedules_count"`
	LastScheduleDate *time.Time `json:"last_schedule_date,omitempty"`
	RolesWorked      []string   `json:"roles_worked,omitempty"`
}

// HasWorkedRole reports whether the volunteer has prior history in the role
func (p *VolunteerProfile) HasWorkedRole(role string) bool {
	for _, r := range p.RolesWorked {
		if r == role {
			return true
		}
	}
	return false
}

// Preferences tunes the scoring policy; every rule defaults to enabled
type Preferences struct {
	AvoidConsecutiveWeeks  bool `json:"avoid_consecutive_weeks"`
	BalanceWorkload        bool `json:"balance_workload"`
	RespectRolePreferences bool `json:"respect_role_preferences"`
}

// DefaultPreferences returns the preference set with every rule enabled
func DefaultPreferences() Preferences {
	return Preferences{
		AvoidConsecutiveWeeks:  true,
		BalanceWorkload:        true,
		RespectRolePreferences: true,
	}
}

// AssignmentRequest is the input for one scheduling run
type AssignmentRequest struct {
	ServiceDate                  string       `json:"service_date"`
	ServiceName                  string       `json:"service_name"`
	Roles                        []string     `json:"roles"`
	VolunteerIDs                 []string     `json:"volunteer_ids,omitempty"`
	StartTime                    string       `json:"start_time,omitempty"`
	EndTime                      string       `json:"end_time,omitempty"`
	UseAIOptimization            bool         `json:"use_ai_optimization"`
	ConsiderCalendarAvailability bool         `json:"consider_calendar_availability"`
	Preferences                  *Preferences `json:"preferences,omitempty"`
}

// EffectivePreferences returns the request preferences, or the defaults when omitted
func (r *AssignmentRequest) EffectivePreferences() Preferences {
	if r.Preferences == nil {
		return DefaultPreferences()
	}
	return *r.Preferences
}

// Assignment pairs a requested role slot with a chosen volunteer
type Assignment struct {
	Role          string `json:"role"`
	VolunteerID   string `json:"volunteer_id"`
	VolunteerName string `json:"volunteer_name"`
	Reason        string `json:"reason"`
}

// Conflict describes a volunteer the AI path considered but rejected
type Conflict struct {
	VolunteerID   string `json:"volunteer_id"`
	VolunteerName string `json:"volunteer_name,omitempty"`
	Reason        string `json:"reason"`
}

// SchedulingResult is the outcome of one scheduling run
type SchedulingResult struct {
	Assignments   []Assignment `json:"assignments"`
	Conflicts     []Conflict   `json:"conflicts,omitempty"`
	Reasoning     string       `json:"reasoning,omitempty"`
	UnfilledRoles []string     `json:"unfilled_roles,omitempty"`
	FairnessScore float64      `json:"fairness_score"`
	Success       bool         `json:"success"`
}
