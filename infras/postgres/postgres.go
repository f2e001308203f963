package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"resort/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Endpoint is one side of the read/write split.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  Connect("read", ReadEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: Connect("write", WriteEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
	}
}

func ReadEndpoint(config *config.Config) Endpoint {
	endpoint := Endpoint(config.DB.Postgres.Read)
	endpoint.Name = config.DB.Postgres.Prefix + endpoint.Name

	return endpoint
}

func WriteEndpoint(config *config.Config) Endpoint {
	endpoint := Endpoint(config.DB.Postgres.Write)
	endpoint.Name = config.DB.Postgres.Prefix + endpoint.Name

	return endpoint
}

// DSN renders the endpoint as a postgres URL. Extra query parameters, such as
// the migrations table, are appended as given.
func (e Endpoint) DSN(extra map[string]string) string {
	query := url.Values{}

	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	for key, value := range extra {
		query.Set(key, value)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Connect dials the endpoint, retrying maxRetry times. The service cannot do
// anything useful without its database, so running out of attempts is fatal.
func Connect(name string, endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	var lastErr error

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect(driverName, endpoint.DSN(nil))
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			log.Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("dbName", endpoint.Name).
				Msg("Connected to database")

			return db
		}

		lastErr = err

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	log.Fatal().Err(fmt.Errorf("connect %s database: %w", name, lastErr)).Msg("Giving up on database")

	return nil
}
