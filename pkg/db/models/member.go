package models

import (
	"time"

	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// Member is a gym customer record with a membership lifecycle.
// Status is derived from ExpiryDate on write except archived, which is a
// manual terminal override (soft delete).
type Member struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName       string               `gorm:"column:first_name;not null"`
	LastName        string               `gorm:"column:last_name;not null"`
	Age             int                  `gorm:"column:age;not null"`
	Gender          enums.Gender         `gorm:"column:gender;type:text;not null"`
	Email           string               `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone           string               `gorm:"column:phone;not null"`
	MembershipType  enums.MembershipType `gorm:"column:membership_type;type:text;not null"`
	Status          enums.MemberStatus   `gorm:"column:status;type:text;not null"`
	JoinedAt        time.Time            `gorm:"column:joined_at;not null"`
	ExpiresAt       time.Time            `gorm:"column:expires_at;not null"`
	ProfileImageURL *string              `gorm:"column:profile_image_url"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins the name fields the way list views render them.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
