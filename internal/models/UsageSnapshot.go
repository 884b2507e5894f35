package models

import (
	"math"
	"time"
)

// Persisted key names. The usage tracker prefixes them with the configured key prefix.
const (
	KeySavedVersion        = "SavedVersion"
	KeyUseCount            = "UseCount"
	KeyFirstUseDate        = "FirstUseDate"
	KeyRatedCurrentVersion = "RatedCurrentVersion"
	KeyDeclinedToRate      = "DeclinedToRate"
	KeyReminderRequestDate = "ReminderRequestDate"
)

// UsageSnapshot is the persisted state for the tracked version as read in one pass.
// Zero times mean the value is absent.
type UsageSnapshot struct {
	Version             string    `json:"version"`
	UseCount            int       `json:"use_count"`
	FirstUseDate        time.Time `json:"first_use_date"`
	RatedCurrentVersion bool      `json:"rated_current_version"`
	DeclinedToRate      bool      `json:"declined_to_rate"`
	ReminderRequestDate time.Time `json:"reminder_request_date"`
}

func (s UsageSnapshot) HasFirstUseDate() bool {
	return !s.FirstUseDate.IsZero()
}

func (s UsageSnapshot) HasReminderRequest() bool {
	return !s.ReminderRequestDate.IsZero()
}

// TimeToEpoch converts t to fractional seconds since the Unix epoch. Zero maps to 0.
func TimeToEpoch(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Second)
}

// EpochToTime is the inverse of TimeToEpoch. Non-positive values are absent.
func EpochToTime(v float64) time.Time {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
