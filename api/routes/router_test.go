package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/felipeortega/gymdesk-backend/internal/auth"
	"github.com/felipeortega/gymdesk-backend/internal/checkins"
	"github.com/felipeortega/gymdesk-backend/internal/dashboard"
	"github.com/felipeortega/gymdesk-backend/internal/members"
	"github.com/felipeortega/gymdesk-backend/internal/payments"
	"github.com/felipeortega/gymdesk-backend/internal/users"
	"github.com/felipeortega/gymdesk-backend/internal/workouts"
	pkgAuth "github.com/felipeortega/gymdesk-backend/pkg/auth"
	"github.com/felipeortega/gymdesk-backend/pkg/auth/session"
	"github.com/felipeortega/gymdesk-backend/pkg/config"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/felipeortega/gymdesk-backend/pkg/logger"
	"github.com/felipeortega/gymdesk-backend/pkg/pagination"
	"github.com/felipeortega/gymdesk-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubMemberService struct{}

func (stubMemberService) List(ctx context.Context, input members.ListMembersInput) ([]members.MemberDTO, pagination.Meta, error) {
	return []members.MemberDTO{}, pagination.NewMeta(input.Pagination, 0), nil
}

func (stubMemberService) Create(ctx context.Context, input members.CreateMemberInput) (*members.MemberDTO, error) {
	return &members.MemberDTO{ID: uuid.New()}, nil
}

func (stubMemberService) GetByID(ctx context.Context, id uuid.UUID) (*members.MemberDTO, error) {
	return &members.MemberDTO{ID: id}, nil
}

func (stubMemberService) Update(ctx context.Context, id uuid.UUID, input members.UpdateMemberInput) (*members.MemberDTO, error) {
	return &members.MemberDTO{ID: id}, nil
}

func (stubMemberService) Archive(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubMemberService) Restore(ctx context.Context, id uuid.UUID) (*members.MemberDTO, error) {
	return &members.MemberDTO{ID: id}, nil
}

func (stubMemberService) Stats(ctx context.Context, id uuid.UUID) (*members.MemberStatsDTO, error) {
	return &members.MemberStatsDTO{}, nil
}

type stubPaymentService struct{}

func (stubPaymentService) List(ctx context.Context, input payments.ListPaymentsInput) ([]payments.PaymentDTO, pagination.Meta, error) {
	return []payments.PaymentDTO{}, pagination.NewMeta(input.Pagination, 0), nil
}

func (stubPaymentService) Create(ctx context.Context, input payments.CreatePaymentInput) (*payments.PaymentDTO, error) {
	return &payments.PaymentDTO{ID: uuid.New()}, nil
}

func (stubPaymentService) GetByID(ctx context.Context, id uuid.UUID) (*payments.PaymentDTO, error) {
	return &payments.PaymentDTO{ID: id}, nil
}

func (stubPaymentService) Update(ctx context.Context, id uuid.UUID, input payments.UpdatePaymentInput) (*payments.PaymentDTO, error) {
	return &payments.PaymentDTO{ID: id}, nil
}

func (stubPaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubPaymentService) MarkPaid(ctx context.Context, id uuid.UUID) (*payments.PaymentDTO, error) {
	return &payments.PaymentDTO{ID: id}, nil
}

func (stubPaymentService) Overview(ctx context.Context) (*payments.OverviewDTO, error) {
	return &payments.OverviewDTO{}, nil
}

type stubWorkoutService struct{}

func (stubWorkoutService) List(ctx context.Context, input workouts.ListWorkoutsInput) ([]workouts.WorkoutDTO, pagination.Meta, error) {
	return []workouts.WorkoutDTO{}, pagination.NewMeta(input.Pagination, 0), nil
}

func (stubWorkoutService) Create(ctx context.Context, input workouts.CreateWorkoutInput) (*workouts.WorkoutDTO, error) {
	return &workouts.WorkoutDTO{ID: uuid.New()}, nil
}

func (stubWorkoutService) GetByID(ctx context.Context, id uuid.UUID) (*workouts.WorkoutDTO, error) {
	return &workouts.WorkoutDTO{ID: id}, nil
}

func (stubWorkoutService) Update(ctx context.Context, id uuid.UUID, input workouts.UpdateWorkoutInput) (*workouts.WorkoutDTO, error) {
	return &workouts.WorkoutDTO{ID: id}, nil
}

func (stubWorkoutService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubWorkoutService) MemberHistory(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]workouts.WorkoutDTO, pagination.Meta, error) {
	return []workouts.WorkoutDTO{}, pagination.NewMeta(params, 0), nil
}

func (stubWorkoutService) Overview(ctx context.Context) (*workouts.OverviewDTO, error) {
	return &workouts.OverviewDTO{}, nil
}

type stubCheckInService struct{}

func (stubCheckInService) Record(ctx context.Context, memberID uuid.UUID) (*checkins.CheckInDTO, error) {
	return &checkins.CheckInDTO{ID: uuid.New(), MemberID: memberID}, nil
}

func (stubCheckInService) List(ctx context.Context, input checkins.ListCheckInsInput) ([]checkins.CheckInDTO, pagination.Meta, error) {
	return []checkins.CheckInDTO{}, pagination.NewMeta(input.Pagination, 0), nil
}

type stubDashboardService struct{}

func (stubDashboardService) Overview(ctx context.Context) (*dashboard.OverviewDTO, error) {
	return &dashboard.OverviewDTO{TotalMembers: 12}, nil
}

func (stubDashboardService) MonthlyStats(ctx context.Context, year int) ([]dashboard.MonthlyBucket, error) {
	return []dashboard.MonthlyBucket{}, nil
}

func (stubDashboardService) MembershipDistribution(ctx context.Context) ([]dashboard.DistributionEntry, error) {
	return []dashboard.DistributionEntry{}, nil
}

func (stubDashboardService) GenderDistribution(ctx context.Context) ([]dashboard.DistributionEntry, error) {
	return []dashboard.DistributionEntry{}, nil
}

func (stubDashboardService) AgeDistribution(ctx context.Context) ([]dashboard.DistributionEntry, error) {
	return []dashboard.DistributionEntry{}, nil
}

func (stubDashboardService) RecentActivities(ctx context.Context, limit int) ([]dashboard.ActivityDTO, error) {
	return []dashboard.ActivityDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},          // db.Pinger
		(*redis.Client)(nil),  // *redis.Client
		stubSessionChecker{},  // session.AccessSessionChecker
		nil,                   // *metrics.HTTPMetrics
		stubAuthService{},     // auth.Service
		stubMemberService{},   // members.Service
		stubPaymentService{},  // payments.Service
		stubWorkoutService{},  // workouts.Service
		stubCheckInService{},  // checkins.Service
		stubDashboardService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveResponds(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/overview", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for dashboard overview got %d", resp.Code)
	}
}

func TestMemberArchiveRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/members/" + uuid.NewString()

	staff := httptest.NewRequest(http.MethodDelete, target, nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff archive got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodDelete, target, nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin archive got %d", resp.Code)
	}
}

func TestPaymentDeleteRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/payments/" + uuid.NewString()

	staff := httptest.NewRequest(http.MethodDelete, target, nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff delete got %d", resp.Code)
	}
}

func TestRegisterRouteHiddenInProd(t *testing.T) {
	cfg := testConfig()
	cfg.App.Env = config.AppEnvProd
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound && resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected register hidden in prod got %d", resp.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}
