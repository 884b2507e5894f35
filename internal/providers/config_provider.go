package providers

import (
	"fmt"
	"path/filepath"
	"reviewreminder/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	rc := structures.DefaultReminderConfig()
	v.SetDefault("reminder.debug", rc.Debug)
	v.SetDefault("reminder.daysUntilPrompt", rc.DaysUntilPrompt)
	v.SetDefault("reminder.usesUntilPrompt", rc.UsesUntilPrompt)
	v.SetDefault("reminder.timeBeforeReminding", rc.TimeBeforeReminding)
	v.SetDefault("reminder.appVersionType", rc.AppVersionType)
	v.SetDefault("reminder.useMainBundle", rc.UseMainBundle)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.keyPrefix", structures.DefaultKeyPrefix)
	v.SetDefault("storage.saveInterval", 30*time.Second)

	v.SetDefault("reachability.probeUrl", structures.DefaultProbeURL)
	v.SetDefault("reachability.interval", 30*time.Second)
	v.SetDefault("reachability.timeout", 5*time.Second)

	v.SetDefault("storeLink.reviewUrlTemplate", structures.DefaultReviewURLTemplate)
	v.SetDefault("cache.ttl", 60)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("appId", "RR_APP_ID")
	_ = v.BindEnv("logger.level", "RR_LOG_LEVEL")
	_ = v.BindEnv("reminder.debug", "RR_DEBUG")
	_ = v.BindEnv("storage.driver", "RR_STORAGE_DRIVER")
	_ = v.BindEnv("storage.redisUrl", "RR_REDIS_URL")
	_ = v.BindEnv("cache.enabled", "RR_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ReviewReminderDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
