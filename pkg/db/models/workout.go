package models

import (
	"time"

	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// Workout is a logged training session for a member.
type Workout struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MemberID        uuid.UUID         `gorm:"column:member_id;type:uuid;not null;index"`
	Type            enums.WorkoutType `gorm:"column:type;type:text;not null"`
	DurationMinutes int               `gorm:"column:duration_minutes;not null"`
	Calories        *int              `gorm:"column:calories"`
	PerformedAt     time.Time         `gorm:"column:performed_at;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Member *Member `gorm:"foreignKey:MemberID"`
}
