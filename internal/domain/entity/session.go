package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/yardops-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Session is a login session. It also carries the statistics exclusions
// chosen while the session is alive.
type Session struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Username            string    `gorm:"size:255;not null" json:"username"`
	ExcludedDepartments []string  `gorm:"serializer:json;type:jsonb" json:"excluded_departments"`
	ExcludedUsers       []string  `gorm:"serializer:json;type:jsonb" json:"excluded_users"`
	ExpiresAt           time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "dashboard_sessions"
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Exclusions returns the excluded entity names for a dimension
func (s *Session) Exclusions(dimension enum.StatsDimension) []string {
	if dimension == enum.StatsDimensionUser {
		return s.ExcludedUsers
	}
	return s.ExcludedDepartments
}

// SetExclusions replaces the excluded entity names for a dimension
func (s *Session) SetExclusions(dimension enum.StatsDimension, names []string) {
	if dimension == enum.StatsDimensionUser {
		s.ExcludedUsers = names
		return
	}
	s.ExcludedDepartments = names
}
