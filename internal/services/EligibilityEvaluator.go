package services

import (
	"math"
	"reviewreminder/internal/models"
	"reviewreminder/internal/services/interfaces"
	"reviewreminder/internal/structures"
	"time"
)

const day = 24 * time.Hour

// maxDays is the longest wait a time.Duration can represent.
const maxDays = math.MaxInt64 / int64(day)

type EligibilityEvaluatorInterface interface {
	Evaluate(snapshot models.UsageSnapshot, conf *structures.ReminderConfig, network models.NetworkState, promptVisible bool) bool
	IsAppropriate(snapshot models.UsageSnapshot, network models.NetworkState, promptVisible bool) bool
	ConditionsMet(snapshot models.UsageSnapshot, conf *structures.ReminderConfig) bool
}

// EligibilityEvaluator decides whether the prompt may be shown. It has no side effects.
type EligibilityEvaluator struct {
	clock interfaces.Clock
}

func NewEligibilityEvaluator(clock interfaces.Clock) EligibilityEvaluatorInterface {
	return &EligibilityEvaluator{clock: clock}
}

func (e *EligibilityEvaluator) Evaluate(snapshot models.UsageSnapshot, conf *structures.ReminderConfig, network models.NetworkState, promptVisible bool) bool {
	return e.IsAppropriate(snapshot, network, promptVisible) && e.ConditionsMet(snapshot, conf)
}

// IsAppropriate reports whether any prompt may be shown right now, regardless
// of whether the user has earned one.
func (e *EligibilityEvaluator) IsAppropriate(snapshot models.UsageSnapshot, network models.NetworkState, promptVisible bool) bool {
	return network == models.NetworkOnline &&
		!snapshot.DeclinedToRate &&
		!snapshot.RatedCurrentVersion &&
		!promptVisible
}

// ConditionsMet checks days since first use, use count and the remind-later
// wait. All comparisons are inclusive. A nil config fails closed.
func (e *EligibilityEvaluator) ConditionsMet(snapshot models.UsageSnapshot, conf *structures.ReminderConfig) bool {
	if conf == nil {
		return false
	}
	if conf.Debug {
		return true
	}

	now := e.clock.Now()

	if !snapshot.HasFirstUseDate() {
		return false
	}
	if !waitedDays(now.Sub(snapshot.FirstUseDate), conf.DaysUntilPrompt) {
		return false
	}

	if snapshot.UseCount < conf.UsesUntilPrompt {
		return false
	}

	if snapshot.HasReminderRequest() && !waitedDays(now.Sub(snapshot.ReminderRequestDate), conf.TimeBeforeReminding) {
		return false
	}

	return true
}

// waitedDays reports whether elapsed covers at least n days. Waits too long
// for a Duration are never reached.
func waitedDays(elapsed time.Duration, n int) bool {
	if n < 0 {
		n = 0
	}
	if int64(n) > maxDays {
		return false
	}
	return elapsed >= time.Duration(n)*day
}
