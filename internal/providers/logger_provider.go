package providers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reviewreminder/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeSession
	TypeReachability
)

var typeNames = map[TypeEnum]string{
	TypeApp:          "app",
	TypeGet:          "get",
	TypePost:         "post",
	TypeSession:      "session",
	TypeReachability: "reachability",
}

func (t TypeEnum) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "app"
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

// NewLogProvider opens one log file per channel under conf.Logger.Dir.
// In debug mode every line is mirrored to a console writer on stderr.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(typeNames))}
	for t, name := range typeNames {
		path := filepath.Join(conf.Logger.Dir, name+".log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, fmt.Errorf("unable to open log file %s: %w", path, err)
		}
		lp.files = append(lp.files, file)

		var w io.Writer = file
		if conf.Debug {
			w = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
		}
		lp.loggers[t] = zerolog.New(w).Level(level).With().Timestamp().Str("channel", name).Logger()
	}

	return lp, nil
}

// NewCliLogProvider logs to stderr so one-shot commands leave the daemon's log files alone.
func NewCliLogProvider(conf *structures.Config) Logger {
	return NewConsoleLogProvider(conf.Logger.Level, os.Stderr)
}

// NewConsoleLogProvider writes every channel to w.
func NewConsoleLogProvider(level string, w io.Writer) Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	base := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(typeNames))}
	for t, name := range typeNames {
		lp.loggers[t] = base.With().Str("channel", name).Logger()
	}
	return lp
}

func (lp *LogProvider) logger(t TypeEnum) *zerolog.Logger {
	l, ok := lp.loggers[t]
	if !ok {
		l = lp.loggers[TypeApp]
	}
	return &l
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
	lp.files = nil
}
