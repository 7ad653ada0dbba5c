package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	Level      string
	FormatJSON bool
	FileName   string // empty: stdout only
}

// Setup configures the global logrus logger.
func Setup(params SetupParams) {
	if params.FormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(parseLevel(params.Level))

	if params.FileName == "" {
		logrus.SetOutput(os.Stdout)
		return
	}

	if !strings.HasSuffix(params.FileName, ".log") {
		params.FileName += ".log"
	}
	fileLogger := &lumberjack.Logger{
		Filename:  params.FileName,
		MaxSize:   20, // megabytes
		LocalTime: false,
		Compress:  true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, fileLogger))
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
