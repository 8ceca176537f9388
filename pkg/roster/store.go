package roster

import (
	"context"

	"github.com/google/uuid"
	"github.com/ministryos/scheduler-api-go/pkg/database"
	"github.com/ministryos/scheduler-api-go/pkg/models"
	"gorm.io/gorm"
)

// Store persists completed scheduling runs and issues confirmation tokens
type Store struct {
	db *gorm.DB
}

// NewStore creates a schedule persistence store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveSchedules writes one row per assignment and returns the records with
// their generated ids. The whole batch is written in a single transaction so
// a failed run never leaves a partial schedule behind.
func (s *Store) SaveSchedules(ctx context.Context, records []models.ScheduleRecord) ([]models.ScheduleRecord, error) {
	rows := make([]database.ScheduleRecord, 0, len(records))
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		rows = append(rows, database.ScheduleRecord{
			ID:          records[i].ID,
			OwnerID:     records[i].OwnerID,
			VolunteerID: records[i].VolunteerID,
			ServiceDate: records[i].ServiceDate,
			ServiceName: records[i].ServiceName,
			Role:        records[i].Role,
			Status:      string(records[i].Status),
		})
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// IssueConfirmationTokens creates one confirmation token per saved schedule.
// The notification subsystem reads these later; delivery is out of scope here.
func (s *Store) IssueConfirmationTokens(ctx context.Context, scheduleIDs []string) ([]string, error) {
	tokens := make([]string, 0, len(scheduleIDs))
	rows := make([]database.ConfirmationToken, 0, len(scheduleIDs))
	for _, id := range scheduleIDs {
		token := uuid.NewString()
		tokens = append(tokens, token)
		rows = append(rows, database.ConfirmationToken{
			ScheduleID: id,
			Token:      token,
		})
	}

	if len(rows) > 0 {
		if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
			return nil, err
		}
	}
	return tokens, nil
}
