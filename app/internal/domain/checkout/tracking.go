package checkout

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	TrackingPrefix = "BD-WC"

	trackingRandLen = 5
	base36          = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	minDeliveryDays = 3
	maxDeliveryDays = 7

	// DeliveryDateLayout renders a long en-GB date with weekday.
	DeliveryDateLayout = "Monday, 2 January 2006"
)

// GenerateTrackingID returns an id that is unique enough for display. No
// collision guarantee is made.
func GenerateTrackingID() string {
	return TrackingID(time.Now())
}

func TrackingID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	var b strings.Builder
	b.Grow(trackingRandLen)
	for range trackingRandLen {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return TrackingPrefix + "-" + ts + "-" + b.String()
}

// EstimatedDelivery picks a date 3 to 7 days after now. Weekends and
// holidays are not skipped.
func EstimatedDelivery(now time.Time) string {
	days := minDeliveryDays + rand.IntN(maxDeliveryDays-minDeliveryDays+1)
	return now.AddDate(0, 0, days).Format(DeliveryDateLayout)
}
