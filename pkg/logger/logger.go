package logger

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const timestampFormat = "2006-01-02 15:04:05"

/* Public */

// Init configures the standard logrus logger. logLevel follows the -v count:
// 0 info, 1 debug, 2+ trace. An empty logFile disables file output.
func Init(logLevel int, logFile string) error {
	var useLevel logrus.Level

	switch {
	case logLevel == 1:
		useLevel = logrus.DebugLevel
	case logLevel > 1:
		useLevel = logrus.TraceLevel
	default:
		useLevel = logrus.InfoLevel
	}

	logrus.SetLevel(useLevel)
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&prefixed.TextFormatter{
		ForceColors:     isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		ForceFormatting: true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})

	if logFile == "" {
		return nil
	}

	hook, err := NewRotateFileHook(RotateFileConfig{
		Filename:   logFile,
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     90,
		Level:      useLevel,
		Formatter: &prefixed.TextFormatter{
			DisableColors:   true,
			ForceFormatting: true,
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		},
	})
	if err != nil {
		return err
	}

	logrus.AddHook(hook)
	return nil
}

func GetLogger(prefix string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"prefix": prefix})
}
