package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/felipeortega/gymdesk-backend/api/responses"
	"github.com/felipeortega/gymdesk-backend/api/validators"
	paymentsvc "github.com/felipeortega/gymdesk-backend/internal/payments"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/logger"
)

func paymentIDParam(r *http.Request) (uuid.UUID, error) {
	return validators.PathUUID(chi.URLParam(r, "paymentId"), "paymentId")
}

// PaymentList returns paginated payments, optionally filtered by member or status.
func PaymentList(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
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

		input := paymentsvc.ListPaymentsInput{
			MemberID:   memberID,
			Status:     r.URL.Query().Get("status"),
			Pagination: params,
		}

		payments, meta, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, payments, meta)
	}
}

type createPaymentRequest struct {
	MemberID string          `json:"member_id" validate:"required,uuid"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Type     string          `json:"type" validate:"required"`
	Status   *string         `json:"status,omitempty"`
	DueAt    time.Time       `json:"due_at" validate:"required"`
	PaidAt   *time.Time      `json:"paid_at,omitempty"`
}

func (r createPaymentRequest) toInput() (paymentsvc.CreatePaymentInput, error) {
	memberID, err := uuid.Parse(strings.TrimSpace(r.MemberID))
	if err != nil {
		return paymentsvc.CreatePaymentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid member id")
	}

	paymentType, err := enums.ParsePaymentType(strings.TrimSpace(r.Type))
	if err != nil {
		return paymentsvc.CreatePaymentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment type")
	}

	input := paymentsvc.CreatePaymentInput{
		MemberID: memberID,
		Amount:   r.Amount,
		Type:     paymentType,
		DueAt:    r.DueAt,
		PaidAt:   r.PaidAt,
	}

	if r.Status != nil {
		status, err := enums.ParsePaymentStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return paymentsvc.CreatePaymentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
		}
		input.Status = &status
	}

	return input, nil
}

// PaymentCreate records a new payment for a member.
func PaymentCreate(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload createPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// PaymentGet returns a single payment by ID.
func PaymentGet(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := paymentIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

type updatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Type   *string          `json:"type,omitempty"`
	Status *string          `json:"status,omitempty"`
	DueAt  *time.Time       `json:"due_at,omitempty"`
	PaidAt *time.Time       `json:"paid_at,omitempty"`
}

func (r updatePaymentRequest) toInput() (paymentsvc.UpdatePaymentInput, error) {
	input := paymentsvc.UpdatePaymentInput{
		Amount: r.Amount,
		DueAt:  r.DueAt,
		PaidAt: r.PaidAt,
	}

	if r.Type != nil {
		paymentType, err := enums.ParsePaymentType(strings.TrimSpace(*r.Type))
		if err != nil {
			return paymentsvc.UpdatePaymentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment type")
		}
		input.Type = &paymentType
	}

	if r.Status != nil {
		status, err := enums.ParsePaymentStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return paymentsvc.UpdatePaymentInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
		}
		input.Status = &status
	}

	return input, nil
}

// PaymentUpdate adjusts the mutable fields of a payment.
func PaymentUpdate(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := paymentIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentDelete removes a payment record.
func PaymentDelete(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := paymentIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "payment deleted")
	}
}

// PaymentMarkPaid settles a pending or overdue payment.
func PaymentMarkPaid(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := paymentIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.MarkPaid(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentOverview aggregates counts, revenue and outstanding totals.
func PaymentOverview(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
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
