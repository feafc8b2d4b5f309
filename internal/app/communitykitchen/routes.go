// Package communitykitchen собирает HTTP API сервиса пожертвований.
package communitykitchen

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/campaign/categories"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/campaign/create"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/campaign/donors"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/campaign/list"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/campaign/read"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/campaign/updatecreate"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/campaign/updatelist"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/dashboard/analytics"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/dashboard/campaigns"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/dashboard/donations"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/donation/donate"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/donation/quote"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/donation/receipt"
	"github.com/magabrotheeeer/community-kitchen/internal/http/handlers/health"
	"github.com/magabrotheeeer/community-kitchen/internal/http/middlewarectx"
)

// AuthService нужен маршрутам входа и проверке токенов.
type AuthService interface {
	login.Service
	register.Service
	middlewarectx.Service
}

// CampaignService обслуживает маршруты кампаний.
type CampaignService interface {
	list.Service
	read.Service
	donors.Service
	updatelist.Service
	updatecreate.Service
	create.Service
	campaigns.Service
}

// DonationService обслуживает маршруты пожертвований и личного кабинета.
type DonationService interface {
	quote.Service
	donate.Service
	donations.Service
	receipt.Service
	analytics.Service
}

// Services сервисы, которые обслуживают маршруты.
type Services struct {
	Auth     AuthService
	Campaign CampaignService
	Donation DonationService
	Health   health.Checker
	Limiter  *middlewarectx.RateLimiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/categories", categories.New().ServeHTTP)
		r.Get("/campaigns", list.New(logger, s.Campaign).ServeHTTP)
		r.Get("/campaigns/{id}", read.New(logger, s.Campaign).ServeHTTP)
		r.Get("/campaigns/{id}/donors", donors.New(logger, s.Campaign).ServeHTTP)
		r.Get("/campaigns/{id}/updates", updatelist.New(logger, s.Campaign).ServeHTTP)
		r.Get("/donations/quote", quote.New(logger, s.Donation).ServeHTTP)

		// Пожертвование без входа допускается
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(s.Limiter, logger))
			r.Post("/campaigns/{id}/donations", donate.New(logger, s.Donation).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(s.Limiter, logger))
			r.Post("/campaigns", create.New(logger, s.Campaign).ServeHTTP)
			r.Post("/campaigns/{id}/updates", updatecreate.New(logger, s.Campaign).ServeHTTP)
			r.Get("/dashboard/campaigns", campaigns.New(logger, s.Campaign).ServeHTTP)
			r.Get("/dashboard/donations", donations.New(logger, s.Donation).ServeHTTP)
			r.Get("/dashboard/donations/{id}/receipt", receipt.New(logger, s.Donation).ServeHTTP)
			r.Get("/dashboard/analytics", analytics.New(logger, s.Donation).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, s.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
