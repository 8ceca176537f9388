package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ministryos/scheduler-api-go/pkg/models"
	"go.uber.org/zap"
)

// ReasonAIUnavailable marks results produced by the rotation fallback after an
// oracle failure.
const ReasonAIUnavailable = "Agendamento gerado por rotação automática (IA indisponível)"

// ServiceDateLayout is the wire format for service dates.
const ServiceDateLayout = "2006-01-02"

// ValidationError rejects a malformed AssignmentRequest before any side effect
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// RosterRepository supplies active volunteers and their recent schedule history
type RosterRepository interface {
	ListActiveVolunteers(ctx context.Context, ownerID string, volunteerIDs []string) ([]models.Volunteer, error)
	ListScheduleHistory(ctx context.Context, ownerID string, since time.Time) ([]models.ScheduleRecord, error)
}

// SchedulePersistence stores finalized assignments and issues confirmation tokens
type SchedulePersistence interface {
	SaveSchedules(ctx context.Context, records []models.ScheduleRecord) ([]models.ScheduleRecord, error)
	IssueConfirmationTokens(ctx context.Context, scheduleIDs []string) ([]string, error)
}

// Suggestion is the structured outcome of a delegated assignment decision
type Suggestion struct {
	Assignments []models.Assignment
	Conflicts   []models.Conflict
	Summary     string
}

// Suggester delegates the assignment decision to an external oracle. Any error
// returned here is converted into a rotation fallback, never surfaced to the
// caller.
type Suggester interface {
	Suggest(ctx context.Context, req models.AssignmentRequest, profiles []*models.VolunteerProfile, history []models.ScheduleRecord) (*Suggestion, error)
}

// Engine is the scheduling orchestrator: it validates the request, picks the
// AI or rotation path, guarantees a fallback, and hands completed runs to the
// persistence collaborator.
type Engine struct {
	roster            RosterRepository
	store             SchedulePersistence
	ai                Suggester
	log               *zap.Logger
	historyWindowDays int
	now               func() time.Time
}

// NewEngine creates a scheduling engine. The Suggester and SchedulePersistence
// may be nil: without a Suggester every run uses rotation, and without
// persistence results are returned but not stored.
func NewEngine(roster RosterRepository, store SchedulePersistence, ai Suggester, logger *zap.Logger, historyWindowDays int) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if historyWindowDays <= 0 {
		historyWindowDays = 90
	}
	return &Engine{
		roster:            roster,
		store:             store,
		ai:                ai,
		log:               logger,
		historyWindowDays: historyWindowDays,
		now:               time.Now,
	}
}

// Generate runs one scheduling invocation for the owner. It returns a
// ValidationError for malformed requests; oracle failures never surface, the
// run falls back to rotation instead. Persistence happens only after a
// completed run, so an error before that point leaves no partial state.
func (e *Engine) Generate(ctx context.Context, ownerID string, req models.AssignmentRequest) (*models.SchedulingResult, error) {
	serviceDate, err := time.Parse(ServiceDateLayout, req.ServiceDate)
	if err != nil {
		return nil, &ValidationError{Msg: "service_date must be formatted as YYYY-MM-DD"}
	}
	if len(req.Roles) == 0 {
		return nil, &ValidationError{Msg: "at least one role is required"}
	}

	now := e.now()

	volunteers, err := e.roster.ListActiveVolunteers(ctx, ownerID, req.VolunteerIDs)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if len(volunteers) == 0 {
		return nil, &ValidationError{Msg: "no active volunteers available"}
	}

	since := HistoryWindowStart(now, e.historyWindowDays)
	history, err := e.roster.ListScheduleHistory(ctx, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("load schedule history: %w", err)
	}

	profiles := BuildProfiles(volunteers, history)
	prefs := req.EffectivePreferences()

	result := &models.SchedulingResult{Success: true}

	if req.UseAIOptimization && e.ai != nil {
		suggestion, err := e.ai.Suggest(ctx, req, profiles, history)
		if err != nil {
			e.log.Warn("oracle failed, falling back to rotation",
				zap.String("owner", ownerID),
				zap.String("service_date", req.ServiceDate),
				zap.Error(err))
			result.Assignments = AssignByRotation(req.Roles, profiles, prefs, now)
			result.Reasoning = ReasonAIUnavailable
		} else {
			result.Assignments = suggestion.Assignments
			result.Conflicts = suggestion.Conflicts
			result.Reasoning = suggestion.Summary
		}
	} else {
		result.Assignments = AssignByRotation(req.Roles, profiles, prefs, now)
	}

	result.UnfilledRoles = unfilledRoles(req.Roles, result.Assignments)
	result.FairnessScore = FairnessScore(profiles, result.Assignments)

	e.log.Info("schedule generated",
		zap.String("owner", ownerID),
		zap.String("service_date", req.ServiceDate),
		zap.Bool("ai_requested", req.UseAIOptimization),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("unfilled", len(result.UnfilledRoles)))

	if e.store != nil && len(result.Assignments) > 0 {
		if err := e.persist(ctx, ownerID, serviceDate, req.ServiceName, result.Assignments); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// persist writes one ScheduleRecord per assignment and issues a confirmation
// token per saved record for the notification subsystem.
func (e *Engine) persist(ctx context.Context, ownerID string, serviceDate time.Time, serviceName string, assignments []models.Assignment) error {
	records := make([]models.ScheduleRecord, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, models.ScheduleRecord{
			OwnerID:     ownerID,
			VolunteerID: a.VolunteerID,
			ServiceDate: serviceDate,
			ServiceName: serviceName,
			Role:        a.Role,
			Status:      models.StatusScheduled,
		})
	}

	saved, err := e.store.SaveSchedules(ctx, records)
	if err != nil {
		return fmt.Errorf("persist schedules: %w", err)
	}

	ids := make([]string, 0, len(saved))
	for _, rec := range saved {
		ids = append(ids, rec.ID)
	}
	if _, err := e.store.IssueConfirmationTokens(ctx, ids); err != nil {
		return fmt.Errorf("issue confirmation tokens: %w", err)
	}
	return nil
}

// unfilledRoles reports the requested role slots left without an assignment.
// Duplicate role entries are distinct slots, so counts matter.
func unfilledRoles(requested []string, assignments []models.Assignment) []string {
	filled := make(map[string]int, len(assignments))
	for _, a := range assignments {
		filled[a.Role]++
	}

	var unfilled []string
	for _, role := range requested {
		if filled[role] > 0 {
			filled[role]--
		} else {
			unfilled = append(unfilled, role)
		}
	}
	return unfilled
}
