package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/payfolio/payslip-backend-go/internal/handler/http/middleware"
	"github.com/payfolio/payslip-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	env string,
	frontendURL string,
	authHandler AuthHandler,
	payslipHandler PayslipHandler,
	taxYearHandler TaxYearHandler,
	settingsHandler SettingsHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payfolio"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payslips", func(r chi.Router) {
				r.Post("/extract", payslipHandler.Extract)
				r.Post("/", payslipHandler.Confirm)
				r.Get("/", payslipHandler.List)
				r.Get("/{id}", payslipHandler.Get)
				r.Delete("/{id}", payslipHandler.Delete)
			})

			r.Route("/tax-years", func(r chi.Router) {
				r.Get("/", taxYearHandler.List)
				r.Get("/{year}", taxYearHandler.Get)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.Patch("/", settingsHandler.Update)
			})

			r.Get("/dashboard", dashboardHandler.GetDashboard)
		})
	})
	return r
}
