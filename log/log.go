// Package log provides structured logging backed by logrus with optional file persistence.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anisan-cli/anipahe/filesystem"
	"github.com/anisan-cli/anipahe/key"
	"github.com/anisan-cli/anipahe/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// enabled indicates whether any log sink was configured.
var enabled bool

// Setup initializes log sinks, formatting and severity from the global configuration.
// When neither the file nor the stderr sink is enabled, every emission is discarded.
func Setup() error {
	toFile, toStderr := viper.GetBool(key.LogsWrite), viper.GetBool(key.LogsStderr)
	enabled = toFile || toStderr
	if !enabled {
		logrus.SetOutput(io.Discard)
		return nil
	}

	var writers []io.Writer
	if toStderr {
		writers = append(writers, os.Stderr)
	}

	if toFile {
		dir := where.Logs()
		if dir == "" {
			return errors.New("log directory path is empty")
		}

		path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
		f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
	}

	logrus.SetOutput(io.MultiWriter(writers...))

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...any) {
	if enabled {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
