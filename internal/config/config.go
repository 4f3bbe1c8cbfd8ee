package config

import (
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeLocal  Mode = "local"  // single household / care-home device
	ModeHosted Mode = "hosted" // multi-tenant deployment
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	MediaBasePath string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	QuestionCap int

	CORSOriginsHosted []string
	CORSOriginsLocal  []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeLocal
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:          mode,
		HTTPAddr:      addr,
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		MediaBasePath: envOr("MEDIA_BASE_PATH", "./media"),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "memorylane-dev-key"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: os.Getenv("ADMIN_PASS_HASH"),
		QuestionCap:   envInt("QUESTION_CAP", 10),

		CORSOriginsHosted: csvOr("CORS_ORIGINS_HOSTED", "https://app.memorylane.care"),
		CORSOriginsLocal:  csvOr("CORS_ORIGINS_LOCAL", "http://localhost:3000,http://localhost:8100"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
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
