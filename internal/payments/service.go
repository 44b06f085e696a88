package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, input ListPaymentsInput) ([]models.Payment, int64, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Overview(ctx context.Context, now time.Time) (*OverviewDTO, error)
}

type memberLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
}

// Service exposes payment operations.
type Service interface {
	List(ctx context.Context, input ListPaymentsInput) ([]PaymentDTO, pagination.Meta, error)
	Create(ctx context.Context, input CreatePaymentInput) (*PaymentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkPaid(ctx context.Context, id uuid.UUID) (*PaymentDTO, error)
	Overview(ctx context.Context) (*OverviewDTO, error)
}

type service struct {
	repo    paymentRepository
	members memberLookup
	now     func() time.Time
}

// NewService builds a payment service with the provided repositories.
func NewService(repo paymentRepository, members memberLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if members == nil {
		return nil, fmt.Errorf("member repository required")
	}
	return &service{repo: repo, members: members, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, input ListPaymentsInput) ([]PaymentDTO, pagination.Meta, error) {
	if input.Status != "" && input.Status != "all" {
		if _, err := enums.ParsePaymentStatus(input.Status); err != nil {
			return nil, pagination.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status filter %q", input.Status))
		}
	}
	input.Pagination = pagination.Normalize(input.Pagination)

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return FromModels(rows), pagination.NewMeta(input.Pagination, total), nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*PaymentDTO, error) {
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
	}
	if input.DueAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "due date is required")
	}

	status := enums.PaymentStatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		status = *input.Status
	}

	payment := &models.Payment{
		MemberID: input.MemberID,
		Amount:   input.Amount,
		Type:     input.Type,
		Status:   status,
		DueAt:    input.DueAt.UTC(),
	}
	if err := applyPaidAt(payment, input.PaidAt, s.now); err != nil {
		return nil, err
	}

	if _, err := s.members.FindByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load member")
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return FromModel(payment), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(payment), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error) {
	payment, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
		}
		payment.Amount = *input.Amount
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type")
		}
		payment.Type = *input.Type
	}
	if input.DueAt != nil {
		payment.DueAt = input.DueAt.UTC()
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
		}
		payment.Status = *input.Status
	}
	if err := applyPaidAt(payment, input.PaidAt, s.now); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment")
	}
	return FromModel(payment), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
	}
	return nil
}

// MarkPaid records a settlement. Only pending or overdue payments may be
// marked; marking an already-paid or cancelled payment is rejected.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.loadPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanMarkPaid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cannot mark %s payment as paid", payment.Status))
	}

	paidAt := s.now().UTC()
	payment.Status = enums.PaymentStatusPaid
	payment.PaidAt = &paidAt

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark payment paid")
	}
	return FromModel(payment), nil
}

func (s *service) Overview(ctx context.Context) (*OverviewDTO, error) {
	overview, err := s.repo.Overview(ctx, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment overview")
	}
	return overview, nil
}

func (s *service) loadPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

// applyPaidAt keeps the paid-at column and the status in lockstep: paid-at is
// set iff the payment is paid.
func applyPaidAt(payment *models.Payment, paidAt *time.Time, now func() time.Time) error {
	if paidAt != nil {
		if payment.Status != enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeValidation, "paid_at requires paid status")
		}
		at := paidAt.UTC()
		payment.PaidAt = &at
		return nil
	}
	switch payment.Status {
	case enums.PaymentStatusPaid:
		if payment.PaidAt == nil {
			at := now().UTC()
			payment.PaidAt = &at
		}
	default:
		payment.PaidAt = nil
	}
	return nil
}
