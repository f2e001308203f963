package timezone_test

import (
	"resort/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLocation(t *testing.T) {
	require.NoError(t, timezone.SetLocation("Asia/Manila"))
	t.Cleanup(func() { _ = timezone.SetLocation("UTC") })

	assert.Equal(t, "Asia/Manila", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Manila", timezone.Now().Location().String())

	checkIn := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-05-02 04:00", timezone.Format(checkIn, "2006-01-02 15:04"))
}

func TestSetLocation_Unknown(t *testing.T) {
	require.NoError(t, timezone.SetLocation("UTC"))

	err := timezone.SetLocation("Resort/Nowhere")

	assert.Error(t, err)
	assert.Equal(t, "UTC", timezone.GetLocation().String())
}

func TestParse(t *testing.T) {
	require.NoError(t, timezone.SetLocation("Asia/Manila"))
	t.Cleanup(func() { _ = timezone.SetLocation("UTC") })

	parsed, err := timezone.Parse(time.DateOnly, "2026-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 30, 16, 0, 0, 0, time.UTC), parsed.UTC())

	_, err = timezone.Parse(time.DateOnly, "01/05/2026")
	assert.Error(t, err)
}
