package main

import (
	"resort/config"
	"resort/di"
	"resort/helper"
	"resort/shared/logger"

	"github.com/rs/zerolog/log"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init -g cmd/app/main.go -d ../../ -o ../../docs

// @title Resort Booking API
// @version 1.0
// @description Bookings, contacts, testimonials and back office administration for the resort.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
