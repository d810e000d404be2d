package logger

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/autobrr/transmission-cleanup/pkg/stringutils"
)

var (
	loggingFilePath string
	loggingLevel    = logrus.InfoLevel
)

// Init configures the global logrus logger: verbosity 0 = info, 1 = debug, 2+ = trace.
// When logFilePath is set, entries are also written to a rotating log file.
func Init(logFilePath string, verbosity int) error {
	switch {
	case verbosity >= 2:
		loggingLevel = logrus.TraceLevel
	case verbosity == 1:
		loggingLevel = logrus.DebugLevel
	default:
		loggingLevel = logrus.InfoLevel
	}

	colors := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(loggingLevel)
	logrus.SetFormatter(&prefixed.TextFormatter{
		ForceColors:     colors,
		DisableColors:   !colors,
		ForceFormatting: true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if logFilePath == "" {
		return nil
	}

	hook, err := NewRotateFileHook(RotateFileConfig{
		Filename:   logFilePath,
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     90,
		Level:      loggingLevel,
		Formatter: &prefixed.TextFormatter{
			DisableColors:   true,
			ForceFormatting: true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		},
	})
	if err != nil {
		return fmt.Errorf("rotate file hook: %w", err)
	}

	logrus.AddHook(hook)
	loggingFilePath = logFilePath
	return nil
}

// GetLogger returns an entry tagged with the component prefix.
func GetLogger(prefix string) *logrus.Entry {
	return logrus.WithField("prefix", prefix)
}

func ShowUsing() {
	log := GetLogger("log")

	if loggingFilePath != "" {
		log.Infof("Using %s = %q", stringutils.LeftJust("LOG", " ", 10), loggingFilePath)
	}
	log.Infof("Using %s = %s", stringutils.LeftJust("VERBOSITY", " ", 10), loggingLevel.String())
}
