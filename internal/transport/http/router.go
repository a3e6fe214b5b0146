package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/wani-app/api/internal/application/auth"
	"github.com/wani-app/api/internal/application/wallet"
	"github.com/wani-app/api/internal/config"
	"github.com/wani-app/api/internal/domain"
	jwtinfra "github.com/wani-app/api/internal/infrastructure/jwt"
	"github.com/wani-app/api/internal/infrastructure/smtp"
	"github.com/wani-app/api/internal/pkg/password"
	"github.com/wani-app/api/internal/transport/http/handler"
	appmiddleware "github.com/wani-app/api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
	Horizon     HorizonClient
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Authenticate(deps.JWTProvider, deps.UserRepo)
	optionalAuthMw := appmiddleware.OptionalAuthenticate(deps.JWTProvider, deps.UserRepo)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo: deps.UserRepo,
		Mailer:   deps.Mailer,
		Hasher:   password.NewHasher(cfg.BcryptCost),
		Codec:    deps.JWTProvider,
	})
	walletSvc := wallet.NewService(wallet.ServiceDeps{
		Horizon:    deps.Horizon,
		USDCIssuer: cfg.USDCIssuer,
	})

	healthH := handler.NewHealthHandler(deps.UserRepo, cfg.AppEnv)
	authH := handler.NewAuthHandler(authSvc)
	walletH := handler.NewWalletHandler(walletSvc)
	adminH := handler.NewAdminHandler(deps.UserRepo)

	r.Get("/health", healthH.Check)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Route("/auth", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/register", authH.Register)
			r.With(sensitiveRL.Limit).Post("/login", authH.Login)
			r.With(sensitiveRL.Limit).Post("/forgot-password", authH.ForgotPassword)
			r.Post("/refresh", authH.Refresh)
			r.Post("/verify-email", authH.VerifyEmail)
			r.Post("/reset-password", authH.ResetPassword)

			// Logged-in callers may omit the email; anonymous callers must
			// provide one. Response is identical either way.
			r.With(sensitiveRL.Limit, optionalAuthMw).Post("/resend-verification", authH.ResendVerification)

			r.With(authMw).Get("/me", authH.Me)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.With(appmiddleware.RequireVerified).
				Get("/wallet/funded/{account}", walletH.Funded)
			r.With(appmiddleware.RequireKYC(domain.KYCBasic)).
				Get("/wallet/balances/{account}", walletH.Balances)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/admin/users/{id}", adminH.GetUser)
			})
		})
	})

	return r
}
