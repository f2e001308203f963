//go:build wireinject
// +build wireinject

package di

import (
	"resort/config"
	"resort/infras/jwt"
	"resort/infras/kafka"
	"resort/infras/mailer"
	"resort/infras/otel"
	"resort/infras/postgres"
	"resort/infras/redis"
	"resort/infras/s3"
	"resort/permissions"
	"resort/shared/cache"
	"resort/shared/event"
	"resort/shared/session"
	"resort/transport/http"
	"resort/transport/http/middleware"
	"resort/transport/http/router"
	"resort/transport/worker"

	"github.com/google/wire"

	authService "resort/internal/domains/auth/service"
	bookingRepository "resort/internal/domains/booking/repository"
	bookingService "resort/internal/domains/booking/service"
	contactRepository "resort/internal/domains/contact/repository"
	contactService "resort/internal/domains/contact/service"
	imageRepository "resort/internal/domains/image/repository"
	imageService "resort/internal/domains/image/service"
	notificationService "resort/internal/domains/notification/service"
	reportService "resort/internal/domains/report/service"
	testimonialRepository "resort/internal/domains/testimonial/repository"
	testimonialService "resort/internal/domains/testimonial/service"
	userRepository "resort/internal/domains/user/repository"
	userService "resort/internal/domains/user/service"

	authHandler "resort/internal/handlers/auth"
	bookingHandler "resort/internal/handlers/booking"
	contactHandler "resort/internal/handlers/contact"
	imageHandler "resort/internal/handlers/image"
	reportHandler "resort/internal/handlers/report"
	testimonialHandler "resort/internal/handlers/testimonial"
	userHandler "resort/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	session.New,
	event.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var testimonialDomain = wire.NewSet(
	testimonialRepository.New,
	testimonialService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var imageDomain = wire.NewSet(
	imageRepository.New,
	imageService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	contactDomain,
	testimonialDomain,
	userDomain,
	authDomain,
	reportDomain,
	imageDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	contactHandler.New,
	testimonialHandler.New,
	userHandler.New,
	reportHandler.New,
	imageHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() (*worker.Worker, error) {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		mailer.New,
		cache.NewRedisCache,
		event.New,
		bookingRepository.New,
		contactRepository.New,
		testimonialDomain,
		reportService.New,
		notificationService.New,
		worker.New,
	)

	return &worker.Worker{}, nil
}

func InitializeUserService() userService.User {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		cache.NewRedisCache,
		userDomain,
	)

	return nil
}
