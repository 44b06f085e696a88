package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/felipeortega/gymdesk-backend/api/responses"
	"github.com/felipeortega/gymdesk-backend/api/validators"
	checkinsvc "github.com/felipeortega/gymdesk-backend/internal/checkins"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/logger"
)

type recordCheckInRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid"`
}

// CheckInRecord stamps a gym visit for a member.
func CheckInRecord(svc checkinsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkin service unavailable"))
			return
		}

		var payload recordCheckInRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		memberID, err := uuid.Parse(strings.TrimSpace(payload.MemberID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid member id"))
			return
		}

		checkin, err := svc.Record(r.Context(), memberID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkin)
	}
}

// CheckInList returns paginated check-ins, optionally scoped by member or time.
func CheckInList(svc checkinsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkin service unavailable"))
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

		since, err := validators.ParseQueryTime(r, "since")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkinsvc.ListCheckInsInput{
			MemberID:   memberID,
			Since:      since,
			Pagination: params,
		}

		checkins, meta, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, checkins, meta)
	}
}
