package config

const (
	defaultDayRate           = 500
	defaultOvernightRate     = 1000
	defaultEntranceFee       = 100
	defaultKaraokePrice      = 500
	defaultMaxGuests         = 20
	defaultBookingCodePrefix = "RST"
	defaultCacheTTL          = 300
	defaultDigestCron        = "0 7 * * *"
	defaultSMTPPort          = 587
	defaultOtelSampleRatio   = 1
	defaultMigrationPath     = "file://migrations/postgres"
	defaultMigrationTable    = "schema_migrations"
	defaultDBMaxRetry        = 1
)

// ApplyDefaults fills zero values with the documented resort defaults.
func (c *Config) ApplyDefaults() {
	if c.Resort.DayRate == 0 {
		c.Resort.DayRate = defaultDayRate
	}

	if c.Resort.OvernightRate == 0 {
		c.Resort.OvernightRate = defaultOvernightRate
	}

	if c.Resort.EntranceFee == 0 {
		c.Resort.EntranceFee = defaultEntranceFee
	}

	if c.Resort.KaraokePrice == 0 {
		c.Resort.KaraokePrice = defaultKaraokePrice
	}

	if c.Resort.MaxGuests == 0 {
		c.Resort.MaxGuests = defaultMaxGuests
	}

	if c.Resort.BookingCodePrefix == "" {
		c.Resort.BookingCodePrefix = defaultBookingCodePrefix
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = defaultCacheTTL
	}

	if c.Scheduler.DigestCron == "" {
		c.Scheduler.DigestCron = defaultDigestCron
	}

	if c.DB.Postgres.MigrationPath == "" {
		c.DB.Postgres.MigrationPath = defaultMigrationPath
	}

	if c.DB.Postgres.MigrationTable == "" {
		c.DB.Postgres.MigrationTable = defaultMigrationTable
	}

	if c.DB.Postgres.MaxRetry < 1 {
		c.DB.Postgres.MaxRetry = defaultDBMaxRetry
	}

	if c.External.Otel.SampleRatio <= 0 {
		c.External.Otel.SampleRatio = defaultOtelSampleRatio
	}

	if c.External.SMTP.Port == 0 {
		c.External.SMTP.Port = defaultSMTPPort
	}
}
