package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/felipeortega/gymdesk-backend/api/responses"
	"github.com/felipeortega/gymdesk-backend/api/validators"
	workoutsvc "github.com/felipeortega/gymdesk-backend/internal/workouts"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/logger"
)

func workoutIDParam(r *http.Request) (uuid.UUID, error) {
	return validators.PathUUID(chi.URLParam(r, "workoutId"), "workoutId")
}

// WorkoutList returns paginated workouts, optionally filtered by member or type.
func WorkoutList(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		memberID, err := validators.ParseQueryUUID(r, "member_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := workoutsvc.ListWorkoutsInput{
			MemberID:   memberID,
			Type:       r.URL.Query().Get("type"),
			Pagination: params,
		}

		workouts, meta, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, workouts, meta)
	}
}

type createWorkoutRequest struct {
	MemberID        string     `json:"member_id" validate:"required,uuid"`
	Type            string     `json:"type" validate:"required"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,min=1"`
	Calories        *int       `json:"calories,omitempty" validate:"omitempty,min=0"`
	PerformedAt     *time.Time `json:"performed_at,omitempty"`
}

func (r createWorkoutRequest) toInput() (workoutsvc.CreateWorkoutInput, error) {
	memberID, err := uuid.Parse(strings.TrimSpace(r.MemberID))
	if err != nil {
		return workoutsvc.CreateWorkoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid member id")
	}

	workoutType, err := enums.ParseWorkoutType(strings.TrimSpace(r.Type))
	if err != nil {
		return workoutsvc.CreateWorkoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workout type")
	}

	return workoutsvc.CreateWorkoutInput{
		MemberID:        memberID,
		Type:            workoutType,
		DurationMinutes: r.DurationMinutes,
		Calories:        r.Calories,
		PerformedAt:     r.PerformedAt,
	}, nil
}

// WorkoutCreate logs a workout for a member.
func WorkoutCreate(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		var payload createWorkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, workout)
	}
}

// WorkoutGet returns a single workout by ID.
func WorkoutGet(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		id, err := workoutIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, workout)
	}
}

type updateWorkoutRequest struct {
	Type            *string    `json:"type,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	Calories        *int       `json:"calories,omitempty" validate:"omitempty,min=0"`
	PerformedAt     *time.Time `json:"performed_at,omitempty"`
}

func (r updateWorkoutRequest) toInput() (workoutsvc.UpdateWorkoutInput, error) {
	input := workoutsvc.UpdateWorkoutInput{
		DurationMinutes: r.DurationMinutes,
		Calories:        r.Calories,
		PerformedAt:     r.PerformedAt,
	}

	if r.Type != nil {
		workoutType, err := enums.ParseWorkoutType(strings.TrimSpace(*r.Type))
		if err != nil {
			return workoutsvc.UpdateWorkoutInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workout type")
		}
		input.Type = &workoutType
	}

	return input, nil
}

// WorkoutUpdate adjusts the mutable fields of a workout entry.
func WorkoutUpdate(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		id, err := workoutIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateWorkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workout, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, workout)
	}
}

// WorkoutDelete removes a workout entry.
func WorkoutDelete(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		id, err := workoutIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "workout deleted")
	}
}

// WorkoutOverview aggregates workout counts by type with total volume.
func WorkoutOverview(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}

// MemberWorkoutHistory returns the workout log for one member, newest first.
func MemberWorkoutHistory(svc workoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workout service unavailable"))
			return
		}

		memberID, err := memberIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workouts, meta, err := svc.MemberHistory(r.Context(), memberID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, workouts, meta)
	}
}
