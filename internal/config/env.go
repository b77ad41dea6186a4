package config

import (
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr         string
	AppEnv          string
	GinMode         string
	DBUser          string
	DBPass          string
	DBHost          string
	DBName          string
	JWTSecret       string
	CORSOrigins     []string
	OutboxInterval  time.Duration
	ShutdownTimeout time.Duration
}

// IsDevelopment gates error detail exposure in responses.
func (e Env) IsDevelopment() bool {
	return e.AppEnv == "development"
}

func LoadEnv() Env {
	env := Env{
		AppAddr:         getenv("APP_ADDR", ":8080"),
		AppEnv:          getenv("APP_ENV", "development"),
		GinMode:         strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:          getenv("DB_USER", "root"),
		DBPass:          strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:          getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:          getenv("DB_NAME", "eventease"),
		JWTSecret:       getenv("JWT_SECRET", "super-secret-key-change-me"),
		OutboxInterval:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	} else {
		env.CORSOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	if raw := strings.TrimSpace(os.Getenv("OUTBOX_INTERVAL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			env.OutboxInterval = d
		}
	}

	Current = env
	return env
}

// Current holds the last loaded Env so handlers can check the runtime mode
// without threading config through every call site.
var Current = Env{AppEnv: "development"}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
