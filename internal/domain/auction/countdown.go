package auction

import (
	"fmt"
	"time"
)

// Countdown is the remaining time of an auction split into display units
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Expired bool
}

// NewCountdown computes the time between now and end. A zero end time or an
// end time in the past yields an expired countdown.
func NewCountdown(now, end time.Time) Countdown {
	if end.IsZero() {
		return Countdown{Expired: true}
	}

	remaining := end.Sub(now)
	if remaining <= 0 {
		return Countdown{Expired: true}
	}

	total := int(remaining / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// String renders the countdown the way listing cards show it
func (c Countdown) String() string {
	switch {
	case c.Expired:
		return "Auction ended"
	case c.Days > 0:
		return fmt.Sprintf("%dd %dh %dm", c.Days, c.Hours, c.Minutes)
	case c.Hours > 0:
		return fmt.Sprintf("%dh %dm %ds", c.Hours, c.Minutes, c.Seconds)
	default:
		return fmt.Sprintf("%dm %ds", c.Minutes, c.Seconds)
	}
}

// EndingSoon reports whether less than an hour remains
func (c Countdown) EndingSoon() bool {
	return !c.Expired && c.Days == 0 && c.Hours == 0
}
