package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ministryos/scheduler-api-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeOracle) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testProfiles() []*models.VolunteerProfile {
	return []*models.VolunteerProfile{
		{Volunteer: models.Volunteer{ID: "v1", Name: "Alice", PreferredRole: "sound"}},
		{Volunteer: models.Volunteer{ID: "v2", Name: "Bob", PreferredRole: "projection"}, SchedulesCount: 4},
	}
}

func testAIRequest() models.AssignmentRequest {
	return models.AssignmentRequest{
		ServiceDate:       "2024-06-09",
		ServiceName:       "Culto de Domingo",
		Roles:             []string{"sound", "projection"},
		UseAIOptimization: true,
	}
}

func TestSuggest_ParsesOracleResponse(t *testing.T) {
	oracle := &fakeOracle{
		response: "Segue a escala sugerida:\n```json\n" +
			`{"assignments":[{"role":"sound","volunteer_id":"v1","reason":"função preferencial"},` +
			`{"role":"projection","volunteer_id":"v2","reason":"experiência"}],` +
			`"conflicts":[],"summary":"Escala equilibrada"}` + "\n```",
	}
	adapter := NewAdapter(oracle, nil)

	suggestion, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)
	require.NoError(t, err)

	require.Len(t, suggestion.Assignments, 2)
	assert.Equal(t, "Alice", suggestion.Assignments[0].VolunteerName)
	assert.Equal(t, "Bob", suggestion.Assignments[1].VolunteerName)
	assert.Equal(t, "Escala equilibrada", suggestion.Summary)
}

func TestSuggest_DropsUnknownVolunteer(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"assignments":[{"role":"sound","volunteer_id":"ghost","reason":"?"},` +
			`{"role":"projection","volunteer_id":"v2","reason":"ok"}],"conflicts":[],"summary":""}`,
	}
	adapter := NewAdapter(oracle, nil)

	suggestion, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)
	require.NoError(t, err)

	require.Len(t, suggestion.Assignments, 1)
	assert.Equal(t, "v2", suggestion.Assignments[0].VolunteerID)
}

func TestSuggest_DropsDuplicateVolunteer(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"assignments":[{"role":"sound","volunteer_id":"v1","reason":"a"},` +
			`{"role":"projection","volunteer_id":"v1","reason":"b"}],"conflicts":[],"summary":""}`,
	}
	adapter := NewAdapter(oracle, nil)

	suggestion, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)
	require.NoError(t, err)

	require.Len(t, suggestion.Assignments, 1)
	assert.Equal(t, "sound", suggestion.Assignments[0].Role)
}

func TestSuggest_DropsOverfilledRoleSlot(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"assignments":[{"role":"sound","volunteer_id":"v1","reason":"a"},` +
			`{"role":"sound","volunteer_id":"v2","reason":"b"}],"conflicts":[],"summary":""}`,
	}
	adapter := NewAdapter(oracle, nil)

	req := testAIRequest()
	req.Roles = []string{"sound"}

	suggestion, err := adapter.Suggest(context.Background(), req, testProfiles(), nil)
	require.NoError(t, err)

	// One requested slot, so the second sound assignment is dropped
	require.Len(t, suggestion.Assignments, 1)
	assert.Equal(t, "v1", suggestion.Assignments[0].VolunteerID)
}

func TestSuggest_DropsUnrequestedRole(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"assignments":[{"role":"greeting","volunteer_id":"v1","reason":"?"},` +
			`{"role":"sound","volunteer_id":"v2","reason":"ok"}],"conflicts":[],"summary":""}`,
	}
	adapter := NewAdapter(oracle, nil)

	suggestion, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)
	require.NoError(t, err)

	require.Len(t, suggestion.Assignments, 1)
	assert.Equal(t, "sound", suggestion.Assignments[0].Role)
}

func TestSuggest_DuplicateRoleSlotsFillTwice(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"assignments":[{"role":"sound","volunteer_id":"v1","reason":"a"},` +
			`{"role":"sound","volunteer_id":"v2","reason":"b"}],"conflicts":[],"summary":""}`,
	}
	adapter := NewAdapter(oracle, nil)

	req := testAIRequest()
	req.Roles = []string{"sound", "sound"}

	suggestion, err := adapter.Suggest(context.Background(), req, testProfiles(), nil)
	require.NoError(t, err)

	require.Len(t, suggestion.Assignments, 2)
}

func TestSuggest_ResolvesConflictNames(t *testing.T) {
	oracle := &fakeOracle{
		response: `{"assignments":[],"conflicts":[{"volunteer_id":"v2","reason":"viagem marcada"},` +
			`{"volunteer_id":"ghost","reason":"?"}],"summary":""}`,
	}
	adapter := NewAdapter(oracle, nil)

	suggestion, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)
	require.NoError(t, err)

	require.Len(t, suggestion.Conflicts, 1)
	assert.Equal(t, "Bob", suggestion.Conflicts[0].VolunteerName)
	assert.Equal(t, "viagem marcada", suggestion.Conflicts[0].Reason)
}

func TestSuggest_OracleFailure(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("connection refused")}
	adapter := NewAdapter(oracle, nil)

	_, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)

	var oErr *OracleError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, "complete", oErr.Op)
}

func TestSuggest_NoJSONInResponse(t *testing.T) {
	oracle := &fakeOracle{response: "não consigo responder em JSON hoje"}
	adapter := NewAdapter(oracle, nil)

	_, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)

	var oErr *OracleError
	require.ErrorAs(t, err, &oErr)
	assert.Equal(t, "parse", oErr.Op)
}

func TestSuggest_MalformedJSON(t *testing.T) {
	oracle := &fakeOracle{response: `{"assignments": "isto deveria ser uma lista"}`}
	adapter := NewAdapter(oracle, nil)

	_, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), nil)

	var oErr *OracleError
	require.ErrorAs(t, err, &oErr)
}

func TestSuggest_PromptCarriesRulesAndData(t *testing.T) {
	oracle := &fakeOracle{response: `{"assignments":[],"conflicts":[],"summary":""}`}
	adapter := NewAdapter(oracle, nil)

	req := testAIRequest()
	req.StartTime = "18:00"
	req.EndTime = "20:00"

	_, err := adapter.Suggest(context.Background(), req, testProfiles(), []models.ScheduleRecord{
		{VolunteerID: "v2", Role: "projection"},
	})
	require.NoError(t, err)

	assert.Contains(t, oracle.lastUser, "Culto de Domingo")
	assert.Contains(t, oracle.lastUser, "2024-06-09")
	assert.Contains(t, oracle.lastUser, "sound, projection")
	assert.Contains(t, oracle.lastUser, "18:00")
	assert.Contains(t, oracle.lastUser, "função preferencial")
	assert.Contains(t, oracle.lastUser, "semanas consecutivas")
	assert.Contains(t, oracle.lastUser, `"Alice"`)
	assert.Contains(t, oracle.lastSystem, "assignments")
}

func TestSuggest_HistoryBounded(t *testing.T) {
	oracle := &fakeOracle{response: `{"assignments":[],"conflicts":[],"summary":""}`}
	adapter := NewAdapter(oracle, nil)

	history := make([]models.ScheduleRecord, 120)
	for i := range history {
		history[i] = models.ScheduleRecord{ID: fmt.Sprintf("rec-%03d", i), VolunteerID: "v1", Role: "sound"}
	}

	_, err := adapter.Suggest(context.Background(), testAIRequest(), testProfiles(), history)
	require.NoError(t, err)
	// History arrives newest first; only the newest 50 records reach the prompt
	assert.Contains(t, oracle.lastUser, "rec-049")
	assert.NotContains(t, oracle.lastUser, "rec-050")
}
