package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver       string
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTKey string
	JWTTTL time.Duration

	RedisAddr string
	RedisPass string
	RedisDB   int
	CacheTTL  time.Duration

	MongoURI string
	MongoDB  string

	CORSOrigins  []string
	MaxUploadMB  int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	LoadEnv()
	return FromEnv()
}

func FromEnv() *Config {
	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	dsn := getEnv("DATABASE_URL", "")
	if dsn == "" && driver == "sqlite" {
		dsn = "estate.db"
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       driver,
		DatabaseURL:    dsn,
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		JWTKey:         getEnv("JWT_KEY", ""),
		JWTTTL:         getEnvDuration("JWT_TTL", 24*time.Hour),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPass:      getEnv("REDIS_PASS", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		CacheTTL:       getEnvDuration("CACHE_TTL", 10*time.Minute),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDB:        getEnv("MONGO_DB", "estate_portal"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		MaxUploadMB:    int64(getEnvInt("MAX_UPLOAD_MB", 10)),
		ReadTimeout:    getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

// getEnvDuration accepts Go durations ("15m") or plain seconds ("3600").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Invalid duration for %s=%q, using %s", key, raw, fallback)
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
