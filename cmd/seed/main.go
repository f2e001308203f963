package main

import (
	"context"
	"resort/config"
	"resort/di"
	"resort/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	users := di.InitializeUserService()

	created, err := users.EnsureSuperAdmin(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed super admin")
	}

	log.Info().Bool("created", created).Msg("Seed finished")
}
