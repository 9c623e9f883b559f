// Package config reads todoapp settings from the environment, an optional
// .env file and an optional TOML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
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

const (
	envPrefix       = "TODO_"
	defaultPort     = 8000
	defaultTokenTTL = 20 * time.Minute
)

var (
	mu         sync.RWMutex
	fileValues = map[string]string{}
)

// Load reads .env from the working directory and the TOML file named by
// TODO_CONFIG_FILE. Values already present in the process environment win.
func Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	path := os.Getenv(envPrefix + "CONFIG_FILE")
	if path == "" {
		return nil
	}
	return LoadFile(path)
}

// LoadFile replaces the file-backed values with the contents of a TOML file.
// Keys are matched case-insensitively without the TODO_ prefix, e.g.
// `port = 8080` backs TODO_PORT.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[envPrefix+strings.ToUpper(k)] = fmt.Sprint(v)
	}
	mu.Lock()
	fileValues = values
	mu.Unlock()
	return nil
}

func lookup(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	mu.RLock()
	defer mu.RUnlock()
	return fileValues[key]
}

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
	logLevel := lookup(envPrefix + "LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return lookup(envPrefix+"DEBUG") == "true"
}

// GetLogFolder returns the folder for the log file. Empty disables file logging.
func GetLogFolder() string {
	return lookup(envPrefix + "LOG_FOLDER")
}

func GetDBFolderPath() string {
	dbFolderPath := lookup(envPrefix + "DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetListen() string {
	return lookup(envPrefix + "LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(lookup(envPrefix + "PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return defaultPort
	}
	return port
}

// GetWebDomain returns the only Host accepted by the web server, if set.
func GetWebDomain() string {
	return lookup(envPrefix + "WEB_DOMAIN")
}

// GetJWTSecret returns the configured token signing secret, or "" if unset.
func GetJWTSecret() string {
	return lookup(envPrefix + "JWT_SECRET")
}

func GetTokenTTL() time.Duration {
	ttl, err := time.ParseDuration(lookup(envPrefix + "TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		return defaultTokenTTL
	}
	return ttl
}

// GetSessionSecret returns the key for the flash-message cookie store.
func GetSessionSecret() string {
	return lookup(envPrefix + "SESSION_SECRET")
}

func GetAdminUsername() string {
	return lookup(envPrefix + "ADMIN_USERNAME")
}

func GetAdminPassword() string {
	return lookup(envPrefix + "ADMIN_PASSWORD")
}

// IsAdminLegacy401 reports whether admin routes answer a non-admin caller
// with 401 instead of 403.
func IsAdminLegacy401() bool {
	return lookup(envPrefix+"ADMIN_LEGACY_401") == "true"
}
