package members

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// MemberDTO exposes member data in API responses.
type MemberDTO struct {
	ID              uuid.UUID            `json:"id"`
	FirstName       string               `json:"first_name"`
	LastName        string               `json:"last_name"`
	Age             int                  `json:"age"`
	Gender          enums.Gender         `json:"gender"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	MembershipType  enums.MembershipType `json:"membership_type"`
	Status          enums.MemberStatus   `json:"status"`
	JoinedAt        time.Time            `json:"joined_at"`
	ExpiresAt       time.Time            `json:"expires_at"`
	ProfileImageURL *string              `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CreateMemberInput holds creation-time data for a new member. JoinedAt and
// ExpiresAt default to now and to the membership term when omitted.
type CreateMemberInput struct {
	FirstName       string
	LastName        string
	Age             int
	Gender          enums.Gender
	Email           string
	Phone           string
	MembershipType  enums.MembershipType
	JoinedAt        *time.Time
	ExpiresAt       *time.Time
	ProfileImageURL *string
}

// UpdateMemberInput captures the allowed member fields for mutation. Nil
// means leave untouched.
type UpdateMemberInput struct {
	FirstName       *string
	LastName        *string
	Age             *int
	Gender          *enums.Gender
	Email           *string
	Phone           *string
	MembershipType  *enums.MembershipType
	ExpiresAt       *time.Time
	ProfileImageURL *string
}

// MemberStatsDTO summarizes a single member's activity.
type MemberStatsDTO struct {
	MemberID      uuid.UUID       `json:"member_id"`
	WorkoutCount  int64           `json:"workout_count"`
	CheckInCount  int64           `json:"checkin_count"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	LastCheckInAt *time.Time      `json:"last_checkin_at,omitempty"`
}

// FromModel maps the persisted member into a DTO.
func FromModel(m *models.Member) *MemberDTO {
	if m == nil {
		return nil
	}
	dto := &MemberDTO{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Age:            m.Age,
		Gender:         m.Gender,
		Email:          m.Email,
		Phone:          m.Phone,
		MembershipType: m.MembershipType,
		Status:         m.Status,
		JoinedAt:       m.JoinedAt,
		ExpiresAt:      m.ExpiresAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.ProfileImageURL != nil {
		cpy := *m.ProfileImageURL
		dto.ProfileImageURL = &cpy
	}
	return dto
}

// FromModels maps a member slice into DTOs.
func FromModels(ms []models.Member) []MemberDTO {
	out := make([]MemberDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
