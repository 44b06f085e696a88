package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	dashboardsvc "github.com/felipeortega/gymdesk-backend/internal/dashboard"
	pkgerrors "github.com/felipeortega/gymdesk-backend/pkg/errors"
)

type stubDashboardService struct {
	overview     *dashboardsvc.OverviewDTO
	buckets      []dashboardsvc.MonthlyBucket
	entries      []dashboardsvc.DistributionEntry
	activities   []dashboardsvc.ActivityDTO
	yearSeen     int
	limitSeen    int
	err          error
	monthlyCalls int
}

func (s *stubDashboardService) Overview(ctx context.Context) (*dashboardsvc.OverviewDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.overview, nil
}

func (s *stubDashboardService) MonthlyStats(ctx context.Context, year int) ([]dashboardsvc.MonthlyBucket, error) {
	s.yearSeen = year
	s.monthlyCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.buckets, nil
}

func (s *stubDashboardService) MembershipDistribution(ctx context.Context) ([]dashboardsvc.DistributionEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubDashboardService) GenderDistribution(ctx context.Context) ([]dashboardsvc.DistributionEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubDashboardService) AgeDistribution(ctx context.Context) ([]dashboardsvc.DistributionEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubDashboardService) RecentActivities(ctx context.Context, limit int) ([]dashboardsvc.ActivityDTO, error) {
	s.limitSeen = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.activities, nil
}

func TestDashboardOverviewSuccess(t *testing.T) {
	svc := &stubDashboardService{overview: &dashboardsvc.OverviewDTO{
		TotalMembers:     40,
		ActiveMembers:    25,
		RevenueThisMonth: decimal.NewFromInt(1200),
	}}
	handler := DashboardOverview(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data dashboardsvc.OverviewDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalMembers != 40 {
		t.Fatalf("unexpected overview %+v", envelope.Data)
	}
}

func TestDashboardMonthlyStatsDefaultsToCurrentYear(t *testing.T) {
	svc := &stubDashboardService{}
	handler := DashboardMonthlyStats(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/monthly-stats", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.yearSeen != time.Now().UTC().Year() {
		t.Fatalf("expected current year got %d", svc.yearSeen)
	}
}

func TestDashboardMonthlyStatsRejectsBogusYear(t *testing.T) {
	svc := &stubDashboardService{}
	handler := DashboardMonthlyStats(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/monthly-stats?year=1800", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.monthlyCalls != 0 {
		t.Fatal("service should not be called for invalid years")
	}
}

func TestDashboardRecentActivitiesPassesLimit(t *testing.T) {
	svc := &stubDashboardService{}
	handler := DashboardRecentActivities(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/recent-activities?limit=5", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.limitSeen != 5 {
		t.Fatalf("expected limit 5 got %d", svc.limitSeen)
	}
}

func TestDashboardRecentActivitiesRejectsOversizeLimit(t *testing.T) {
	handler := DashboardRecentActivities(&stubDashboardService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/recent-activities?limit=500", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestDashboardAgeDistributionDependencyFailure(t *testing.T) {
	handler := DashboardAgeDistribution(&stubDashboardService{err: pkgerrors.New(pkgerrors.CodeDependency, "db down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/age-distribution", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
