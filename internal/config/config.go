package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	// FeedLimit is the number of thoughts GET /thoughts returns.
	FeedLimit = 20
)

type Config struct {
	Addr           string
	Store          string
	MongoURL       string
	SQLitePath     string
	DatabaseURL    string
	FeedLimit      int
	ConnectTimeout time.Duration
	Log            Log
}

type Log struct {
	Level  string
	Format string
}

// Load reads the configuration from the environment. Values from a .env file
// in the working directory are applied first without overriding variables
// that are already set.
func Load() Config {
	_ = godotenv.Load()

	addr := envString("HAPPYTHOUGHTS_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	cfg := Config{
		Addr:           addr,
		Store:          strings.ToLower(envString("HAPPYTHOUGHTS_STORE", StoreMongo)),
		MongoURL:       envString("MONGO_URL", "mongodb://127.0.0.1:27017/project-happy-thoughts-api"),
		SQLitePath:     envString("HAPPYTHOUGHTS_DB", "happythoughts.db"),
		DatabaseURL:    envString("DATABASE_URL", "postgres://localhost:5432/happythoughts"),
		FeedLimit:      envInt("HAPPYTHOUGHTS_FEED_LIMIT", FeedLimit),
		ConnectTimeout: envDuration("HAPPYTHOUGHTS_CONNECT_TIMEOUT", 10*time.Second),
		Log: Log{
			Level:  envString("HAPPYTHOUGHTS_LOG_LEVEL", "info"),
			Format: envString("HAPPYTHOUGHTS_LOG_FORMAT", "json"),
		},
	}
	// The feed never returns more than FeedLimit thoughts; the variable can
	// only shrink it.
	if cfg.FeedLimit <= 0 || cfg.FeedLimit > FeedLimit {
		cfg.FeedLimit = FeedLimit
	}

	return cfg
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
