// Package timezone pins every clock reading in the service to APP_TIMEZONE,
// the resort's local time. Booking dates, report months and the digest
// schedule are all read in that zone.
package timezone

import (
	"fmt"
	"resort/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var (
	appLocation *time.Location
	loadOnce    sync.Once
	mu          sync.RWMutex
)

func load() {
	loadOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			log.Warn().Msg("No timezone configured, using UTC as default")

			name = fallbackZone
		}

		if err := SetLocation(name); err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

			_ = SetLocation(fallbackZone)

			return
		}

		log.Info().Str("timezone", name).Msg("Application timezone initialized")
	})
}

// SetLocation replaces the application zone. name must be an IANA name such
// as "Asia/Manila".
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load location %q: %w", name, err)
	}

	mu.Lock()
	appLocation = loc
	mu.Unlock()

	return nil
}

// GetLocation returns the application zone, loading it from config on first use.
func GetLocation() *time.Location {
	mu.RLock()
	loc := appLocation
	mu.RUnlock()

	if loc != nil {
		return loc
	}

	load()

	mu.RLock()
	defer mu.RUnlock()

	return appLocation
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as wall-clock time in the application zone.
func Parse(layout, value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(layout, value, GetLocation())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", value, err)
	}

	return parsed, nil
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
