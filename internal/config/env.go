package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	EmailHost string
	EmailPort string
	EmailUser string
	EmailPass string
	EmailFrom string
}

func LoadEnv() Env {
	return Env{
		AppAddr: getenv("APP_ADDR", ":8050"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASS", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "tripticket"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		EmailHost: getenv("EMAIL_HOST", "smtp.gmail.com"),
		EmailPort: getenv("EMAIL_PORT", "587"),
		EmailUser: getenv("EMAIL_USER", ""),
		EmailPass: getenv("EMAIL_PASS", ""),
		EmailFrom: getenv("EMAIL_FROM", "Trip Ticket <no-reply@localhost>"),
	}
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
