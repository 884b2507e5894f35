package internal

import (
	"reviewreminder/internal/models"
	"reviewreminder/internal/services"
	"reviewreminder/internal/services/interfaces"
	"reviewreminder/internal/structures"
)

// Maintenance backs the one-shot commands that inspect or reset the
// persisted counters without starting a session.
type Maintenance struct {
	conf     *structures.Config
	tracker  services.UsageTrackerInterface
	metadata interfaces.AppMetadataProvider
}

func NewMaintenance(conf *structures.Config, tracker services.UsageTrackerInterface, metadata interfaces.AppMetadataProvider) *Maintenance {
	return &Maintenance{conf: conf, tracker: tracker, metadata: metadata}
}

func (m *Maintenance) AppID() string {
	return m.conf.AppID
}

func (m *Maintenance) CurrentVersion() string {
	return m.metadata.CurrentVersion(m.conf.Reminder.AppVersionType)
}

func (m *Maintenance) State() models.UsageSnapshot {
	return m.tracker.Snapshot()
}

// Reset starts a fresh trial period for the current version.
func (m *Maintenance) Reset() (models.UsageSnapshot, error) {
	return m.tracker.Reset(m.CurrentVersion())
}
