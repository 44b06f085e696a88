package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	checkinsvc "github.com/felipeortega/gymdesk-backend/internal/checkins"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
)

type stubCheckInService struct {
	checkin   *checkinsvc.CheckInDTO
	listResp  []checkinsvc.CheckInDTO
	listMeta  pagination.Meta
	listInput *checkinsvc.ListCheckInsInput
	err       error
}

func (s *stubCheckInService) Record(ctx context.Context, memberID uuid.UUID) (*checkinsvc.CheckInDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.checkin, nil
}

func (s *stubCheckInService) List(ctx context.Context, input checkinsvc.ListCheckInsInput) ([]checkinsvc.CheckInDTO, pagination.Meta, error) {
	if s.listInput != nil {
		*s.listInput = input
	}
	if s.err != nil {
		return nil, pagination.Meta{}, s.err
	}
	return s.listResp, s.listMeta, nil
}

func TestCheckInRecordSuccess(t *testing.T) {
	memberID := uuid.New()
	dto := &checkinsvc.CheckInDTO{
		ID:          uuid.New(),
		MemberID:    memberID,
		CheckedInAt: time.Now().UTC(),
	}
	handler := CheckInRecord(&stubCheckInService{checkin: dto}, nil)

	payload := []byte(`{"member_id":"` + memberID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkins", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data checkinsvc.CheckInDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.MemberID != memberID {
		t.Fatalf("expected member %s got %s", memberID, envelope.Data.MemberID)
	}
}

func TestCheckInRecordArchivedMember(t *testing.T) {
	handler := CheckInRecord(&stubCheckInService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "member is archived")}, nil)

	payload := []byte(`{"member_id":"` + uuid.NewString() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkins", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}

func TestCheckInRecordInvalidBody(t *testing.T) {
	handler := CheckInRecord(&stubCheckInService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkins", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckInListScopesByMemberAndSince(t *testing.T) {
	var captured checkinsvc.ListCheckInsInput
	memberID := uuid.New()
	handler := CheckInList(&stubCheckInService{listInput: &captured}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkins?member_id="+memberID.String()+"&since=2025-06-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if captured.MemberID == nil || *captured.MemberID != memberID {
		t.Fatalf("expected member filter %s got %v", memberID, captured.MemberID)
	}
	if captured.Since == nil || !captured.Since.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected since %v", captured.Since)
	}
}

func TestCheckInListRejectsBadSince(t *testing.T) {
	handler := CheckInList(&stubCheckInService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkins?since=yesterday", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
