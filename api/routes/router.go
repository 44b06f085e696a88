package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/felipeortega/gymdesk-backend/api/controllers"
	"github.com/felipeortega/gymdesk-backend/api/middleware"
	"github.com/felipeortega/gymdesk-backend/internal/auth"
	"github.com/felipeortega/gymdesk-backend/internal/checkins"
	"github.com/felipeortega/gymdesk-backend/internal/dashboard"
	"github.com/felipeortega/gymdesk-backend/internal/members"
	"github.com/felipeortega/gymdesk-backend/internal/payments"
	"github.com/felipeortega/gymdesk-backend/internal/workouts"
	"github.com/felipeortega/gymdesk-backend/pkg/auth/session"
	"github.com/felipeortega/gymdesk-backend/pkg/config"
	"github.com/felipeortega/gymdesk-backend/pkg/db"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
	"github.com/felipeortega/gymdesk-backend/pkg/logger"
	"github.com/felipeortega/gymdesk-backend/pkg/metrics"
	"github.com/felipeortega/gymdesk-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	memberService members.Service,
	paymentService payments.Service,
	workoutService workouts.Service,
	checkinService checkins.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		if !cfg.App.IsProd() {
			r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		}
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Get("/me", controllers.AuthMe(authService, logg))
			r.Post("/logout", controllers.AuthLogout(authService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		adminOnly := middleware.RequireRole(enums.UserRoleAdmin, logg)

		r.Route("/members", func(r chi.Router) {
			r.Get("/", controllers.MemberList(memberService, logg))
			r.Post("/", controllers.MemberCreate(memberService, logg))
			r.Get("/{memberId}", controllers.MemberGet(memberService, logg))
			r.Put("/{memberId}", controllers.MemberUpdate(memberService, logg))
			r.With(adminOnly).Delete("/{memberId}", controllers.MemberArchive(memberService, logg))
			r.With(adminOnly).Post("/{memberId}/restore", controllers.MemberRestore(memberService, logg))
			r.Get("/{memberId}/stats", controllers.MemberStats(memberService, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentList(paymentService, logg))
			r.Post("/", controllers.PaymentCreate(paymentService, logg))
			r.Get("/stats/overview", controllers.PaymentOverview(paymentService, logg))
			r.Get("/{paymentId}", controllers.PaymentGet(paymentService, logg))
			r.Put("/{paymentId}", controllers.PaymentUpdate(paymentService, logg))
			r.With(adminOnly).Delete("/{paymentId}", controllers.PaymentDelete(paymentService, logg))
			r.Patch("/{paymentId}/mark-paid", controllers.PaymentMarkPaid(paymentService, logg))
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", controllers.WorkoutList(workoutService, logg))
			r.Post("/", controllers.WorkoutCreate(workoutService, logg))
			r.Get("/stats/overview", controllers.WorkoutOverview(workoutService, logg))
			r.Get("/{workoutId}", controllers.WorkoutGet(workoutService, logg))
			r.Put("/{workoutId}", controllers.WorkoutUpdate(workoutService, logg))
			r.With(adminOnly).Delete("/{workoutId}", controllers.WorkoutDelete(workoutService, logg))
			r.Get("/member/{memberId}/history", controllers.MemberWorkoutHistory(workoutService, logg))
		})

		r.Route("/checkins", func(r chi.Router) {
			r.Get("/", controllers.CheckInList(checkinService, logg))
			r.Post("/", controllers.CheckInRecord(checkinService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/overview", controllers.DashboardOverview(dashboardService, logg))
			r.Get("/monthly-stats", controllers.DashboardMonthlyStats(dashboardService, logg))
			r.Get("/membership-distribution", controllers.DashboardMembershipDistribution(dashboardService, logg))
			r.Get("/gender-distribution", controllers.DashboardGenderDistribution(dashboardService, logg))
			r.Get("/age-distribution", controllers.DashboardAgeDistribution(dashboardService, logg))
			r.Get("/recent-activities", controllers.DashboardRecentActivities(dashboardService, logg))
		})
	})

	return r
}
