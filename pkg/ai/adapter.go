package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ministryos/scheduler-api-go/pkg/models"
	"github.com/ministryos/scheduler-api-go/pkg/scheduler"
	"go.uber.org/zap"
)

// maxHistoryRecords bounds how much raw history is serialized into the prompt.
const maxHistoryRecords = 50

const schedulingSystemPrompt = `Você é um assistente de escalas de voluntários de uma igreja.
Sua tarefa é designar voluntários para funções de um culto seguindo as regras informadas.
Responda SOMENTE com um objeto JSON no formato:
{"assignments":[{"role":"...","volunteer_id":"...","reason":"..."}],"conflicts":[{"volunteer_id":"...","reason":"..."}],"summary":"..."}
Cada função recebe no máximo um voluntário e nenhum voluntário pode aparecer duas vezes em assignments.
Use apenas volunteer_id presentes na lista de voluntários.`

// Adapter formats a scheduling run for the oracle, parses its untrusted reply
// and maps the suggestion back to known volunteers. It implements
// scheduler.Suggester.
type Adapter struct {
	oracle Oracle
	log    *zap.Logger
}

// NewAdapter creates an AI assignment adapter
func NewAdapter(oracle Oracle, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{oracle: oracle, log: logger}
}

type oracleAssignment struct {
	Role        string `json:"role"`
	VolunteerID string `json:"volunteer_id"`
	Reason      string `json:"reason"`
}

type oracleConflict struct {
	VolunteerID string `json:"volunteer_id"`
	Reason      string `json:"reason"`
}

type oracleResponse struct {
	Assignments []oracleAssignment `json:"assignments"`
	Conflicts   []oracleConflict   `json:"conflicts"`
	Summary     string             `json:"summary"`
}

// Suggest delegates the assignment decision to the oracle. Any failure (call,
// payload location, parse) is returned as *OracleError so the orchestrator can
// fall back to rotation.
func (a *Adapter) Suggest(ctx context.Context, req models.AssignmentRequest, profiles []*models.VolunteerProfile, history []models.ScheduleRecord) (*scheduler.Suggestion, error) {
	prompt, err := a.buildPrompt(req, profiles, history)
	if err != nil {
		return nil, &OracleError{Op: "prompt", Err: err}
	}

	raw, err := a.oracle.Complete(ctx, schedulingSystemPrompt, prompt)
	if err != nil {
		return nil, &OracleError{Op: "complete", Err: err}
	}

	payload, ok := extractJSON(raw)
	if !ok {
		return nil, &OracleError{Op: "parse", Err: errors.New("no JSON object found in oracle response")}
	}

	var resp oracleResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, &OracleError{Op: "parse", Err: err}
	}

	return a.mapSuggestion(resp, req.Roles, profiles), nil
}

// buildPrompt encodes the service request, the serialized volunteer profiles,
// a bounded history window and the four scoring rules in natural language.
func (a *Adapter) buildPrompt(req models.AssignmentRequest, profiles []*models.VolunteerProfile, history []models.ScheduleRecord) (string, error) {
	prefs := req.EffectivePreferences()

	profilesJSON, err := json.Marshal(profiles)
	if err != nil {
		return "", fmt.Errorf("serialize profiles: %w", err)
	}

	if len(history) > maxHistoryRecords {
		history = history[:maxHistoryRecords]
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("serialize history: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Culto: %s em %s\n", req.ServiceName, req.ServiceDate)
	if req.StartTime != "" {
		fmt.Fprintf(&sb, "Horário: %s - %s\n", req.StartTime, req.EndTime)
	}
	fmt.Fprintf(&sb, "Funções a preencher, em ordem de prioridade: %s\n\n", strings.Join(req.Roles, ", "))

	sb.WriteString("Regras de designação:\n")
	if prefs.RespectRolePreferences {
		sb.WriteString("- Prefira voluntários cuja função preferencial (preferred_role) seja a função a preencher.\n")
	}
	if prefs.BalanceWorkload {
		sb.WriteString("- Equilibre a carga: quem tem mais escalas recentes (schedules_count) deve servir menos.\n")
	}
	if prefs.AvoidConsecutiveWeeks {
		sb.WriteString("- Evite semanas consecutivas: quem serviu há menos de 7 dias (last_schedule_date) deve descansar.\n")
	}
	sb.WriteString("- Considere experiência anterior na função (roles_worked).\n")
	if req.ConsiderCalendarAvailability {
		sb.WriteString("- Se identificar possível indisponibilidade de agenda, registre o voluntário em conflicts com o motivo.\n")
	}

	fmt.Fprintf(&sb, "\nVoluntários disponíveis:\n%s\n", profilesJSON)
	fmt.Fprintf(&sb, "\nHistórico recente de escalas:\n%s\n", historyJSON)

	return sb.String(), nil
}

// mapSuggestion resolves oracle volunteer ids back to known profiles. Unknown
// ids, repeated volunteers and role slots beyond the requested ones are
// dropped rather than assigned.
func (a *Adapter) mapSuggestion(resp oracleResponse, roles []string, profiles []*models.VolunteerProfile) *scheduler.Suggestion {
	byID := make(map[string]*models.VolunteerProfile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	// Duplicate role entries in the request are distinct slots
	slots := make(map[string]int, len(roles))
	for _, role := range roles {
		slots[role]++
	}

	suggestion := &scheduler.Suggestion{Summary: resp.Summary}

	used := make(map[string]bool, len(resp.Assignments))
	for _, oa := range resp.Assignments {
		profile, ok := byID[oa.VolunteerID]
		if !ok {
			a.log.Warn("oracle suggested unknown volunteer, dropping",
				zap.String("volunteer_id", oa.VolunteerID),
				zap.String("role", oa.Role))
			continue
		}
		if used[oa.VolunteerID] {
			a.log.Warn("oracle assigned volunteer twice, dropping duplicate",
				zap.String("volunteer_id", oa.VolunteerID),
				zap.String("role", oa.Role))
			continue
		}
		if slots[oa.Role] == 0 {
			a.log.Warn("oracle over-filled or invented a role slot, dropping",
				zap.String("volunteer_id", oa.VolunteerID),
				zap.String("role", oa.Role))
			continue
		}
		slots[oa.Role]--
		used[oa.VolunteerID] = true
		suggestion.Assignments = append(suggestion.Assignments, models.Assignment{
			Role:          oa.Role,
			VolunteerID:   oa.VolunteerID,
			VolunteerName: profile.Name,
			Reason:        oa.Reason,
		})
	}

	for _, oc := range resp.Conflicts {
		profile, ok := byID[oc.VolunteerID]
		if !ok {
			continue
		}
		suggestion.Conflicts = append(suggestion.Conflicts, models.Conflict{
			VolunteerID:   oc.VolunteerID,
			VolunteerName: profile.Name,
			Reason:        oc.Reason,
		})
	}

	return suggestion
}
