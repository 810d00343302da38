package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("DLOG_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("DLOG_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("DLOG_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/drivelog"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("DLOG_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("DLOG_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("DLOG_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	maxAge, err := strconv.Atoi(os.Getenv("DLOG_SESSION_MAX_AGE"))
	if err != nil || maxAge <= 0 {
		return 60
	}
	return maxAge
}

// GetSessionSecret returns the secret used to authenticate session cookies.
// An empty value tells the web server to mint a random one at startup.
func GetSessionSecret() string {
	return os.Getenv("DLOG_SESSION_SECRET")
}
