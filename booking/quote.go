package booking

import (
	"fmt"
	"math"
	"time"
)

// Nights returns the number of billable nights between check-in and
// check-out, rounding partial days up.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	return int(math.Ceil(diff.Hours() / 24))
}

// Total projects the stay price from the room snapshot. It is recomputed on
// every render and is never authoritative; once the reservation exists the
// server total wins.
func Total(checkIn, checkOut time.Time, pricePerNight float64) float64 {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0
	}
	return float64(nights) * pricePerNight
}

// FormatCountdown renders seconds as m:ss for the OTP step, e.g. 90 -> "1:30".
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
