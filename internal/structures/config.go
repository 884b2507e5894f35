package structures

import (
	"reviewreminder/internal/models"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver       string        `yaml:"driver" validate:"required|in:memory,file,redis"`
	FilePath     string        `yaml:"filePath"`
	RedisURL     string        `yaml:"redisUrl"`
	KeyPrefix    string        `yaml:"keyPrefix"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// ReminderConfig holds the prompt thresholds. It is immutable once a session starts.
type ReminderConfig struct {
	Debug               bool   `yaml:"debug"`
	DaysUntilPrompt     int    `yaml:"daysUntilPrompt" validate:"min:0|max:36500"`
	UsesUntilPrompt     int    `yaml:"usesUntilPrompt" validate:"min:0"`
	TimeBeforeReminding int    `yaml:"timeBeforeReminding" validate:"min:0|max:36500"`
	AppVersionType      string `yaml:"appVersionType" validate:"in:CFBundleVersion,CFBundleShortVersionString"`
	UseMainBundle       bool   `yaml:"useMainBundle"`

	Delegate *models.Delegate `yaml:"-" mapstructure:"-"`
}

// AlertStrings overrides the localized defaults. Empty fields keep the default.
type AlertStrings struct {
	Title          string `yaml:"title"`
	Message        string `yaml:"message"`
	DeclineTitle   string `yaml:"declineTitle"`
	RateTitle      string `yaml:"rateTitle"`
	RateLaterTitle string `yaml:"rateLaterTitle"`
}

// AppMetadata mirrors the host bundle: info dictionaries plus the host string table.
type AppMetadata struct {
	Locale        string            `yaml:"locale"`
	Info          map[string]string `yaml:"info"`
	LocalizedInfo map[string]string `yaml:"localizedInfo"`
	Strings       map[string]string `yaml:"strings"`
}

type ReachabilityConfig struct {
	ProbeURL string        `yaml:"probeUrl"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

type StoreLinkConfig struct {
	ReviewURLTemplate string `yaml:"reviewUrlTemplate"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	TTL     int  `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName      string
	Debug        bool
	Path         string
	AppID        string             `yaml:"appId" validate:"required"`
	Reminder     ReminderConfig     `yaml:"reminder"`
	Strings      AlertStrings       `yaml:"strings"`
	App          AppMetadata        `yaml:"app"`
	Storage      StorageConfig      `yaml:"storage"`
	Reachability ReachabilityConfig `yaml:"reachability"`
	StoreLink    StoreLinkConfig    `yaml:"storeLink"`
	WebServer    Server             `yaml:"webServer"`
	Logger       LoggerConfig       `yaml:"logger"`
	Cache        CacheConfig        `yaml:"cache"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

const (
	VersionTypeBundle      = "CFBundleVersion"
	VersionTypeShortString = "CFBundleShortVersionString"

	DefaultReviewURLTemplate = "itms-apps://itunes.apple.com/WebObjects/MZStore.woa/wa/viewContentsUserReviews?id=%s&type=Purple+Software&mt=8"
	DefaultProbeURL          = "https://google.com"
	DefaultKeyPrefix         = "abrr"
)

// DefaultReminderConfig returns the thresholds used when the host supplies none.
func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Debug:               false,
		DaysUntilPrompt:     30,
		UsesUntilPrompt:     20,
		TimeBeforeReminding: 1,
		AppVersionType:      VersionTypeBundle,
		UseMainBundle:       false,
	}
}
