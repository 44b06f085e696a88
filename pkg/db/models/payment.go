package models

import (
	"time"

	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is a front-desk charge against a member.
// Invariant: PaidAt is set iff Status is paid.
type Payment struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MemberID  uuid.UUID           `gorm:"column:member_id;type:uuid;not null;index"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Type      enums.PaymentType   `gorm:"column:type;type:text;not null"`
	Status    enums.PaymentStatus `gorm:"column:status;type:text;not null"`
	DueAt     time.Time           `gorm:"column:due_at;not null"`
	PaidAt    *time.Time          `gorm:"column:paid_at"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Member *Member `gorm:"foreignKey:MemberID"`
}
