package checkins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

// CheckInDTO exposes a gym entry record in API responses.
type CheckInDTO struct {
	ID          uuid.UUID `json:"id"`
	MemberID    uuid.UUID `json:"member_id"`
	MemberName  string    `json:"member_name,omitempty"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// ListCheckInsInput captures the inputs for the paginated check-in list.
type ListCheckInsInput struct {
	MemberID   *uuid.UUID
	Since      *time.Time
	Pagination pagination.Params
}

// FromModel maps the persisted check-in into a DTO.
func FromModel(c *models.CheckIn) *CheckInDTO {
	if c == nil {
		return nil
	}
	dto := &CheckInDTO{
		ID:          c.ID,
		MemberID:    c.MemberID,
		CheckedInAt: c.CheckedInAt,
	}
	if c.Member != nil {
		dto.MemberName = c.Member.FullName()
	}
	return dto
}

// FromModels maps a check-in slice into DTOs.
func FromModels(cs []models.CheckIn) []CheckInDTO {
	out := make([]CheckInDTO, 0, len(cs))
	for i := range cs {
		out = append(out, *FromModel(&cs[i]))
	}
	return out
}

// Repository handles check-in persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to check-in operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new check-in row.
func (r *Repository) Create(ctx context.Context, checkin *models.CheckIn) error {
	if checkin == nil {
		return fmt.Errorf("check-in is required")
	}
	return r.db.WithContext(ctx).Create(checkin).Error
}

// List returns a filtered check-in page, newest first, plus the total match
// count.
func (r *Repository) List(ctx context.Context, input ListCheckInsInput) ([]models.CheckIn, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.CheckIn{})
	if input.MemberID != nil {
		base = base.Where("member_id = ?", *input.MemberID)
	}
	if input.Since != nil {
		base = base.Where("checked_in_at >= ?", *input.Since)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CheckIn
	if err := base.
		Preload("Member").
		Order("checked_in_at DESC").
		Limit(input.Pagination.Limit).
		Offset(input.Pagination.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type checkInRepository interface {
	Create(ctx context.Context, checkin *models.CheckIn) error
	List(ctx context.Context, input ListCheckInsInput) ([]models.CheckIn, int64, error)
}

type memberLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

// Service exposes check-in operations.
type Service interface {
	Record(ctx context.Context, memberID uuid.UUID) (*CheckInDTO, error)
	List(ctx context.Context, input ListCheckInsInput) ([]CheckInDTO, pagination.Meta, error)
}

type service struct {
	repo    checkInRepository
	members memberLookup
	now     func() time.Time
}

// NewService builds a check-in service with the provided repositories.
func NewService(repo checkInRepository, members memberLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("check-in repository required")
	}
	if members == nil {
		return nil, fmt.Errorf("member repository required")
	}
	return &service{repo: repo, members: members, now: time.Now}, nil
}

// Record logs a gym entry for a member. Archived members are turned away at
// the desk.
func (s *service) Record(ctx context.Context, memberID uuid.UUID) (*CheckInDTO, error) {
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}
	if member.Status.IsArchived() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "member is archived")
	}

	checkin := &models.CheckIn{
		MemberID:    memberID,
		CheckedInAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, checkin); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record check-in")
	}

	dto := FromModel(checkin)
	dto.MemberName = member.FullName()
	return dto, nil
}

func (s *service) List(ctx context.Context, input ListCheckInsInput) ([]CheckInDTO, pagination.Meta, error) {
	input.Pagination = pagination.Normalize(input.Pagination)

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list check-ins")
	}
	return FromModels(rows), pagination.NewMeta(input.Pagination, total), nil
}
