package router

import (
	"resort/config"
	"resort/internal/handlers/auth"
	"resort/internal/handlers/booking"
	"resort/internal/handlers/contact"
	"resort/internal/handlers/image"
	"resort/internal/handlers/report"
	"resort/internal/handlers/testimonial"
	"resort/internal/handlers/user"
	"resort/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Booking     booking.Handler
	Contact     contact.Handler
	Testimonial testimonial.Handler
	User        user.Handler
	Report      report.Handler
	Image       image.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Config         *config.Config
}

// SetupRoutes installs the middleware chain and the versioned API. It must run
// before any other route is added to router.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
	)

	if corsConfig := r.Config.App.CORS; corsConfig.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	router.Use(
		r.App.Tracing,
		r.App.RateLimit(),
		r.AuthRole.APIKey,
		r.AuthRole.Auth,
		r.AuthRole.RBAC,
	)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
		r.DomainHandlers.Testimonial.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.Image.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Config:         cfg,
	}
}
