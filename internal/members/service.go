package members

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db"
	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

type memberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	List(ctx context.Context, input ListMembersInput) ([]models.Member, int64, error)
	Update(ctx context.Context, member *models.Member) error
	Stats(ctx context.Context, id uuid.UUID) (*MemberStatsDTO, error)
}

// Service exposes member operations.
type Service interface {
	List(ctx context.Context, input ListMembersInput) ([]MemberDTO, pagination.Meta, error)
	Create(ctx context.Context, input CreateMemberInput) (*MemberDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MemberDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (*MemberDTO, error)
	Archive(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*MemberDTO, error)
	Stats(ctx context.Context, id uuid.UUID) (*MemberStatsDTO, error)
}

type service struct {
	repo memberRepository
	now  func() time.Time
}

// NewService builds a member service with the provided repository.
func NewService(repo memberRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("member repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, input ListMembersInput) ([]MemberDTO, pagination.Meta, error) {
	input.Filters = input.Filters.Normalize()
	if err := input.Filters.Validate(); err != nil {
		return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	input.Pagination = pagination.Normalize(input.Pagination)

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list members")
	}
	return FromModels(rows), pagination.NewMeta(input.Pagination, total), nil
}

func (s *service) Create(ctx context.Context, input CreateMemberInput) (*MemberDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !input.Gender.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
	}
	if !input.MembershipType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid membership type")
	}

	now := s.now().UTC()
	joinedAt := now
	if input.JoinedAt != nil {
		joinedAt = input.JoinedAt.UTC()
	}
	expiresAt := joinedAt.AddDate(0, input.MembershipType.Months(), 0)
	if input.ExpiresAt != nil {
		expiresAt = input.ExpiresAt.UTC()
	}

	member := &models.Member{
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		Age:             input.Age,
		Gender:          input.Gender,
		Email:           email,
		Phone:           strings.TrimSpace(input.Phone),
		MembershipType:  input.MembershipType,
		Status:          DeriveStatus(enums.MemberStatusActive, expiresAt, now),
		JoinedAt:        joinedAt,
		ExpiresAt:       expiresAt,
		ProfileImageURL: input.ProfileImageURL,
	}

	if err := s.repo.Create(ctx, member); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create member")
	}
	return FromModel(member), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MemberDTO, error) {
	member, err := s.loadMember(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(member), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (*MemberDTO, error) {
	member, err := s.loadMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		member.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		member.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Age != nil {
		member.Age = *input.Age
	}
	if input.Gender != nil {
		if !input.Gender.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
		}
		member.Gender = *input.Gender
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
		}
		member.Email = email
	}
	if input.Phone != nil {
		member.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.MembershipType != nil {
		if !input.MembershipType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid membership type")
		}
		member.MembershipType = *input.MembershipType
	}
	if input.ProfileImageURL != nil {
		cpy := *input.ProfileImageURL
		member.ProfileImageURL = &cpy
	}
	if input.ExpiresAt != nil {
		member.ExpiresAt = input.ExpiresAt.UTC()
	}

	// Re-derive on every write so expiry edits take effect immediately.
	member.Status = DeriveStatus(member.Status, member.ExpiresAt, s.now().UTC())

	if err := s.repo.Update(ctx, member); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update member")
	}
	return FromModel(member), nil
}

// Archive soft-deletes a member. Archived is terminal for status derivation;
// only Restore brings the member back.
func (s *service) Archive(ctx context.Context, id uuid.UUID) error {
	member, err := s.loadMember(ctx, id)
	if err != nil {
		return err
	}
	if !member.Status.CanArchive() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "member is already archived")
	}
	member.Status = enums.MemberStatusArchived
	if err := s.repo.Update(ctx, member); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive member")
	}
	return nil
}

// Restore reverses an archive, recomputing the effective status from the
// member's expiry date.
func (s *service) Restore(ctx context.Context, id uuid.UUID) (*MemberDTO, error) {
	member, err := s.loadMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if !member.Status.IsArchived() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "member is not archived")
	}
	member.Status = DeriveStatus(enums.MemberStatusActive, member.ExpiresAt, s.now().UTC())
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore member")
	}
	return FromModel(member), nil
}

func (s *service) Stats(ctx context.Context, id uuid.UUID) (*MemberStatsDTO, error) {
	if _, err := s.loadMember(ctx, id); err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member stats")
	}
	return stats, nil
}

func (s *service) loadMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}
	return member, nil
}
