package database

import (
	"log"
	"time"

	"github.com/ministryos/scheduler-api-go/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Volunteer represents the volunteers table
type Volunteer struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	OwnerID       string    `gorm:"index;not null" json:"owner_id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `json:"email"`
	PreferredRole string    `json:"preferred_role"`
	Active        bool      `gorm:"default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// ScheduleRecord represents the schedule_records table
type ScheduleRecord struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"index;not null" json:"owner_id"`
	VolunteerID string    `gorm:"index;not null" json:"volunteer_id"`
	ServiceDate time.Time `gorm:"index;not null" json:"service_date"`
	ServiceName string    `json:"service_name"`
	Role        string    `gorm:"not null" json:"role"`
	Status      string    `gorm:"default:scheduled" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConfirmationToken represents the confirmation_tokens table; tokens are
// handed to the notification subsystem so volunteers can confirm a slot.
type ConfirmationToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ScheduleID string     `gorm:"uniqueIndex;not null" json:"schedule_id"`
	Token      string     `gorm:"unique;not null" json:"token"`
	CreatedAt  time.Time  `json:"created_at"`
	UsedAt     *time.Time `json:"used_at"`
}

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	KeyID           uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date            string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount    int    `gorm:"default:0" json:"request_count"`
	TotalRoles      int    `gorm:"default:0" json:"total_roles"`
	TotalVolunteers int    `gorm:"default:0" json:"total_volunteers"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB(cfg config.Config) *gorm.DB {
	var db *gorm.DB
	var err error

	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.DataPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(
		&Volunteer{},
		&ScheduleRecord{},
		&ConfirmationToken{},
		&APIKey{},
		&APIUsage{},
		&MasterUser{},
	)

	return db
}
