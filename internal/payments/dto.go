package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// PaymentDTO exposes payment data in API responses. MemberName is populated
// when the member row was preloaded.
type PaymentDTO struct {
	ID         uuid.UUID           `json:"id"`
	MemberID   uuid.UUID           `json:"member_id"`
	MemberName string              `json:"member_name,omitempty"`
	Amount     decimal.Decimal     `json:"amount"`
	Type       enums.PaymentType   `json:"type"`
	Status     enums.PaymentStatus `json:"status"`
	DueAt      time.Time           `json:"due_at"`
	PaidAt     *time.Time          `json:"paid_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// CreatePaymentInput holds creation-time data for a new payment.
type CreatePaymentInput struct {
	MemberID uuid.UUID
	Amount   decimal.Decimal
	Type     enums.PaymentType
	Status   *enums.PaymentStatus
	DueAt    time.Time
	PaidAt   *time.Time
}

// UpdatePaymentInput captures the allowed payment fields for mutation. Nil
// means leave untouched.
type UpdatePaymentInput struct {
	Amount *decimal.Decimal
	Type   *enums.PaymentType
	Status *enums.PaymentStatus
	DueAt  *time.Time
	PaidAt *time.Time
}

// OverviewDTO summarizes payment activity for the stats endpoint.
type OverviewDTO struct {
	TotalCount       int64            `json:"total_count"`
	CountByStatus    map[string]int64 `json:"count_by_status"`
	OutstandingTotal decimal.Decimal  `json:"outstanding_total"`
	RevenueThisMonth decimal.Decimal  `json:"revenue_this_month"`
	RevenueAllTime   decimal.Decimal  `json:"revenue_all_time"`
}

// FromModel maps the persisted payment into a DTO.
func FromModel(p *models.Payment) *PaymentDTO {
	if p == nil {
		return nil
	}
	dto := &PaymentDTO{
		ID:        p.ID,
		MemberID:  p.MemberID,
		Amount:    p.Amount,
		Type:      p.Type,
		Status:    p.Status,
		DueAt:     p.DueAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.PaidAt != nil {
		cpy := *p.PaidAt
		dto.PaidAt = &cpy
	}
	if p.Member != nil {
		dto.MemberName = p.Member.FullName()
	}
	return dto
}

// FromModels maps a payment slice into DTOs.
func FromModels(ps []models.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *FromModel(&ps[i]))
	}
	return out
}
