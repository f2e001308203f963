package postgres_test

import (
	"resort/config"
	"resort/infras/postgres"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoint_DSN(t *testing.T) {
	tests := []struct {
		name     string
		endpoint postgres.Endpoint
		extra    map[string]string
		want     string
	}{
		{
			name: "plain credentials",
			endpoint: postgres.Endpoint{
				Host: "db", Port: "5432", Username: "resort", Password: "secret", Name: "resort", SSLMode: "disable",
			},
			want: "postgres://resort:secret@db:5432/resort?sslmode=disable",
		},
		{
			name: "password with reserved characters is escaped",
			endpoint: postgres.Endpoint{
				Host: "db", Port: "5432", Username: "resort", Password: "p@ss/word", Name: "resort",
			},
			want: "postgres://resort:p%40ss%2Fword@db:5432/resort",
		},
		{
			name: "timezone and migrations table",
			endpoint: postgres.Endpoint{
				Host: "db", Port: "5432", Username: "resort", Password: "secret", Name: "resort", Timezone: "Asia/Manila", SSLMode: "disable",
			},
			extra: map[string]string{"x-migrations-table": "schema_migrations"},
			want:  "postgres://resort:secret@db:5432/resort?sslmode=disable&timezone=Asia%2FManila&x-migrations-table=schema_migrations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.endpoint.DSN(tt.extra))
		})
	}
}

func TestEndpoints_ApplyPrefix(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "staging_"
	cfg.DB.Postgres.Read.Name = "resort"
	cfg.DB.Postgres.Read.Host = "replica"
	cfg.DB.Postgres.Write.Name = "resort"
	cfg.DB.Postgres.Write.Host = "primary"

	assert.Equal(t, "staging_resort", postgres.ReadEndpoint(cfg).Name)
	assert.Equal(t, "replica", postgres.ReadEndpoint(cfg).Host)
	assert.Equal(t, "staging_resort", postgres.WriteEndpoint(cfg).Name)
	assert.Equal(t, "primary", postgres.WriteEndpoint(cfg).Host)
}
