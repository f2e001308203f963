package logger

import (
	"io"
	"os"
	"resort/config"
	"resort/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// InitLogger installs a human readable console logger at trace level. It runs
// before configuration is loaded so config errors are still visible.
func InitLogger() {
	initWith(os.Stdout)
}

func initWith(out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Stack().Err(errors.WithStack(err)).Msg("unexpected error")
}

// SetLogLevel applies the configured level. Production logs are written as
// JSON tagged with the app name and default to info instead of trace.
func SetLogLevel(cfg *config.Config) {
	fallback := zerolog.TraceLevel

	if cfg.Server.Env == constant.ServerEnvProduction {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("app", cfg.App.Name).Logger()
		fallback = zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == constant.Empty {
		level = fallback
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
