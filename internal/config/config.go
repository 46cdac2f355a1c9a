package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string // sqlite|postgres
	DBDSN    string

	BlobBasePath    string
	LocalWorksheets bool // serve <topic>/questions.csv from the blob store

	TopicsFile      string // YAML topic catalogue; empty uses the built-in topics
	MasterConfigURL string // published CSV with topic config and leaderboard

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	AuthHMACSecret string
	// bcrypt hash of the parent settings password; empty hashes the
	// built-in default at startup
	ParentPassHash string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	LogLevel     string
	FetchTimeout time.Duration
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		BlobBasePath:       envOr("BLOB_BASE_PATH", "./data"),
		LocalWorksheets:    envBool("LOCAL_WORKSHEETS", false),
		TopicsFile:         os.Getenv("TOPICS_FILE"),
		MasterConfigURL:    os.Getenv("MASTER_CONFIG_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:      envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AuthHMACSecret:     envOr("AUTH_HMAC_SECRET", "dev-secret-change-me"),
		ParentPassHash:     os.Getenv("PARENT_PASS_HASH"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", ""),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		FetchTimeout:       time.Duration(envInt("FETCH_TIMEOUT_SEC", 15)) * time.Second,
	}
}

// CORSOrigins picks the allow-list for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
