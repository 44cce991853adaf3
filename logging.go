package main

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging configures the standard logrus logger. Without a logs path
// everything goes to stdout; otherwise to a rotating file, optionally teed to
// stdout.
func setupLogging(cfg *Config) {
	if cfg.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(getLevel(cfg.LogLevel))

	if cfg.LogsPath == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
		return
	}

	fileName := cfg.LogsPath
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	rotating := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    50, // megabytes
		MaxBackups: 10,
		LocalTime:  false,
		Compress:   true,
	}

	if cfg.LogToStdout {
		logrus.SetOutput(io.MultiWriter(os.Stdout, rotating))
		logrus.Println("writing logs to file and STDOUT")
	} else {
		logrus.SetOutput(rotating)
	}
}

// getLevel parses a level name; unknown names fall back to info.
func getLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
