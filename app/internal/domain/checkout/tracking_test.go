package checkout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var trackingIDPattern = regexp.MustCompile(`^BD-WC-[0-9A-Z]+-[0-9A-Z]{5}$`)

func TestGenerateTrackingID_Shape(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := GenerateTrackingID()
		require.Regexp(t, trackingIDPattern, id)
	}
}

func TestTrackingID_EncodesTimestamp(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := TrackingID(now)
	require.Regexp(t, `^BD-WC-LOYW3V28-[0-9A-Z]{5}$`, id)
}

func TestEstimatedDelivery_WithinWindow(t *testing.T) {
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	allowed := map[string]bool{}
	for d := 3; d <= 7; d++ {
		allowed[now.AddDate(0, 0, d).Format(DeliveryDateLayout)] = true
	}

	for i := 0; i < 100; i++ {
		got := EstimatedDelivery(now)
		require.True(t, allowed[got], "unexpected delivery date %q", got)
		require.Regexp(t, `^[A-Z][a-z]+day, \d{1,2} [A-Z][a-z]+ \d{4}$`, got)
	}
}
