package main

import (
	"os"
	"resort/config"
	"resort/helper"
	"resort/shared/logger"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	usage := strings.Join(helper.Actions(), "|")

	if len(os.Args) < argLength {
		log.Fatal().Msgf("usage: migrate <%s>", usage)
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("usage", usage).Msg("Migration failed")
	}
}
