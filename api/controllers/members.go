package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/felipeortega/gymdesk-backend/api/responses"
	"github.com/felipeortega/gymdesk-backend/api/validators"
	membersvc "github.com/felipeortega/gymdesk-backend/internal/members"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/logger"
)

func memberIDParam(r *http.Request) (uuid.UUID, error) {
	return validators.PathUUID(chi.URLParam(r, "memberId"), "memberId")
}

// MemberList returns paginated members honoring search, status and type filters.
func MemberList(svc membersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := membersvc.ListMembersInput{
			Filters: membersvc.Filters{
				Search:         validators.SanitizeString(r.URL.Query().Get("search"), 120),
				Status:         r.URL.Query().Get("status"),
				MembershipType: r.URL.Query().Get("membership_type"),
			},
			SortBy:     r.URL.Query().Get("sort_by"),
			SortOrder:  r.URL.Query().Get("sort_order"),
			Pagination: params,
		}

		members, meta, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, members, meta)
	}
}

type createMemberRequest struct {
	FirstName       string     `json:"first_name" validate:"required"`
	LastName        string     `json:"last_name" validate:"required"`
	Age             int        `json:"age" validate:"required,min=16,max=120"`
	Gender          string     `json:"gender" validate:"required"`
	Email           string     `json:"email" validate:"required,email"`
	Phone           string     `json:"phone" validate:"required"`
	MembershipType  string     `json:"membership_type" validate:"required"`
	JoinedAt        *time.Time `json:"joined_at,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
}

func (r createMemberRequest) toInput() (membersvc.CreateMemberInput, error) {
	gender, err := enums.ParseGender(strings.TrimSpace(r.Gender))
	if err != nil {
		return membersvc.CreateMemberInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
	}

	membershipType, err := enums.ParseMembershipType(strings.TrimSpace(r.MembershipType))
	if err != nil {
		return membersvc.CreateMemberInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid membership type")
	}

	return membersvc.CreateMemberInput{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Age:             r.Age,
		Gender:          gender,
		Email:           r.Email,
		Phone:           r.Phone,
		MembershipType:  membershipType,
		JoinedAt:        r.JoinedAt,
		ExpiresAt:       r.ExpiresAt,
		ProfileImageURL: r.ProfileImageURL,
	}, nil
}

// MemberCreate registers a new gym member.
func MemberCreate(svc membersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		var payload createMemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, member)
	}
}

// MemberGet returns a single member by ID.
func MemberGet(svc membersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		id, err := memberIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, member)
	}
}

type updateMemberRequest struct {
	FirstName       *string    `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName        *string    `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Age             *int       `json:"age,omitempty" validate:"omitempty,min=16,max=120"`
	Gender          *string    `json:"gender,omitempty"`
	Email           *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string    `json:"phone,omitempty"`
	MembershipType  *string    `json:"membership_type,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
}

func (r updateMemberRequest) toInput() (membersvc.UpdateMemberInput, error) {
	input := membersvc.UpdateMemberInput{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Age:             r.Age,
		Email:           r.Email,
		Phone:           r.Phone,
		ExpiresAt:       r.ExpiresAt,
		ProfileImageURL: r.ProfileImageURL,
	}

	if r.Gender != nil {
		gender, err := enums.ParseGender(strings.TrimSpace(*r.Gender))
		if err != nil {
			return membersvc.UpdateMemberInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender")
		}
		input.Gender = &gender
	}

	if r.MembershipType != nil {
		membershipType, err := enums.ParseMembershipType(strings.TrimSpace(*r.MembershipType))
		if err != nil {
			return membersvc.UpdateMemberInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid membership type")
		}
		input.MembershipType = &membershipType
	}

	return input, nil
}

// MemberUpdate adjusts the mutable fields of a member.
func MemberUpdate(svc membersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		id, err := memberIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateMemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, member)
	}
}

// MemberArchive soft-deletes a member, keeping their history intact.
func MemberArchive(svc membersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		id, err := memberIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Archive(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "member archived")
	}
}

// MemberRestore brings an archived member back with a freshly derived status.
func MemberRestore(svc membersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		id, err := memberIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.Restore(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, member)
	}
}

// MemberStats summarizes a member's activity and payment totals.
func MemberStats(svc membersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "member service unavailable"))
			return
		}

		id, err := memberIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
