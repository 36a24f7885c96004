package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SessionBackendMemory    = "memory"
	SessionBackendFirestore = "firestore"
)

type Config struct {
	Port           string
	ProjectID      string
	LogLevel       string
	SessionBackend string
	AuthEnabled    bool
	MaxUploadBytes int64
	SampleDays     int
	SampleSeed     uint64
	MaxSessions    int
	SessionTTL     time.Duration
}

func New() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		ProjectID:      os.Getenv("PROJECTID"),
		LogLevel:       os.Getenv("LOGLEVEL"),
		SessionBackend: getSessionBackend(os.Getenv("SESSIONBACKEND")),
		AuthEnabled:    getBool("AUTHENABLED"),
		MaxUploadBytes: int64(getInt("MAXUPLOADMB", 50)) << 20,
		SampleDays:     getInt("SAMPLEDAYS", 90),
		SampleSeed:     uint64(getInt("SAMPLESEED", 42)),
		MaxSessions:    getInt("MAXSESSIONS", 500),
		SessionTTL:     time.Duration(getInt("SESSIONTTLMIN", 60)) * time.Minute,
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getSessionBackend(backend string) string {
	switch strings.ToLower(backend) {
	case "firestore":
		return SessionBackendFirestore
	default: // "memory"
		return SessionBackendMemory
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
