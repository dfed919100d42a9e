package commons

import (
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

var Logger = newLogger()

// InitLogger re-applies LOG_LEVEL after the env file has been loaded.
func InitLogger() {
	Logger.SetLevel(levelFromEnv())
}

func newLogger() *log.Logger {
	logger := log.New("bizdesk")
	logger.SetLevel(levelFromEnv())
	logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")
	return logger
}

func levelFromEnv() log.Lvl {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return log.DEBUG
	case "INFO":
		return log.INFO
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
