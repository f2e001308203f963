package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"resort/config"
	"resort/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

type action func(mig *migrate.Migrate) error

var actions = map[string]action{
	ActionUp:     func(mig *migrate.Migrate) error { return mig.Up() },
	ActionDown:   func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	ActionStepUp: func(mig *migrate.Migrate) error { return mig.Steps(1) },
	ActionDrop:   func(mig *migrate.Migrate) error { return mig.Down() },
	ActionVersion: func(mig *migrate.Migrate) error {
		version, dirty, err := mig.Version()
		if err != nil {
			return err
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	},
}

// Actions lists the accepted migration actions.
func Actions() []string {
	return []string{ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion}
}

func newMigrate(config *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.WriteEndpoint(config).DSN(map[string]string{
		"x-migrations-table": config.DB.Postgres.MigrationTable,
	})

	mig, err := migrate.New(config.DB.Postgres.MigrationPath, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one migration action against the write database. Having
// nothing to do is not an error.
func Runner(config *config.Config, name string) error {
	run, ok := actions[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}

	mig, err := newMigrate(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil {
		if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Str("action", name).Msg("Schema already up to date")

			return nil
		}

		return fmt.Errorf("migration %s failed: %w", name, err)
	}

	log.Info().Str("action", name).Msg("Database migration finished")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
