package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn records a member entering the gym. Rows are immutable.
type CheckIn struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MemberID    uuid.UUID `gorm:"column:member_id;type:uuid;not null;index"`
	CheckedInAt time.Time `gorm:"column:checked_in_at;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Member *Member `gorm:"foreignKey:MemberID"`
}

// TableName pins the table to the migrated name; GORM would otherwise
// pluralize CheckIn as check_ins.
func (CheckIn) TableName() string {
	return "checkins"
}
