package roster

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ministryos/scheduler-api-go/pkg/database"
	"github.com/ministryos/scheduler-api-go/pkg/models"
	"gorm.io/gorm"
)

// Repository reads the volunteer roster and schedule history for a tenant
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a roster repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveVolunteers returns the owner's active volunteers, optionally
// restricted to an explicit id allow-list. Roster order is creation order,
// which the scoring policy uses as its tiebreak.
func (r *Repository) ListActiveVolunteers(ctx context.Context, ownerID string, volunteerIDs []string) ([]models.Volunteer, error) {
	q := r.db.WithContext(ctx).
		Where("owner_id = ? AND active = ?", ownerID, true).
		Order("created_at")
	if len(volunteerIDs) > 0 {
		q = q.Where("id IN ?", volunteerIDs)
	}

	var rows []database.Volunteer
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	volunteers := make([]models.Volunteer, 0, len(rows))
	for _, row := range rows {
		volunteers = append(volunteers, models.Volunteer{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			PreferredRole: row.PreferredRole,
			Active:        row.Active,
		})
	}
	return volunteers, nil
}

// ListScheduleHistory returns the owner's schedule records since the given
// date, newest first.
func (r *Repository) ListScheduleHistory(ctx context.Context, ownerID string, since time.Time) ([]models.ScheduleRecord, error) {
	var rows []database.ScheduleRecord
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND service_date >= ?", ownerID, since).
		Order("service_date desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]models.ScheduleRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.ScheduleRecord{
			ID:          row.ID,
			OwnerID:     row.OwnerID,
			VolunteerID: row.VolunteerID,
			ServiceDate: row.ServiceDate,
			ServiceName: row.ServiceName,
			Role:        row.Role,
			Status:      models.ScheduleStatus(row.Status),
		})
	}
	return records, nil
}

// CreateVolunteer inserts a volunteer into the owner's roster
func (r *Repository) CreateVolunteer(ctx context.Context, ownerID string, v models.Volunteer) (models.Volunteer, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	row := database.Volunteer{
		ID:            v.ID,
		OwnerID:       ownerID,
		Name:          v.Name,
		Email:         v.Email,
		PreferredRole: v.PreferredRole,
		Active:        true,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Volunteer{}, err
	}
	v.Active = true
	return v, nil
}

// DeactivateVolunteer removes a volunteer from scheduling without deleting
// their history.
func (r *Repository) DeactivateVolunteer(ctx context.Context, ownerID, volunteerID string) error {
	return r.db.WithContext(ctx).
		Model(&database.Volunteer{}).
		Where("id = ? AND owner_id = ?", volunteerID, ownerID).
		Update("active", false).Error
}
