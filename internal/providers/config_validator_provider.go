package providers

import (
	"fmt"
	"reviewreminder/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.One())
	}

	switch cv.conf.Storage.Driver {
	case "file":
		if cv.conf.Storage.FilePath == "" {
			return fmt.Errorf("invalid configuration: storage.filePath is required for the file driver")
		}
	case "redis":
		if cv.conf.Storage.RedisURL == "" {
			return fmt.Errorf("invalid configuration: storage.redisUrl is required for the redis driver")
		}
	}
	return nil
}

// ValidateReminder checks thresholds supplied at session start outside the config file.
func ValidateReminder(rc *structures.ReminderConfig) error {
	v := validate.Struct(rc)
	if !v.Validate() {
		return fmt.Errorf("invalid reminder configuration: %s", v.Errors.One())
	}
	return nil
}
