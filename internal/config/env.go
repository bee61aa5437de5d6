package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Env struct {
	AppAddr string `envconfig:"APP_ADDR" default:":3000"`
	GinMode string `envconfig:"GIN_MODE"`

	DBUser string `envconfig:"DB_USER" default:"root"`
	DBPass string `envconfig:"DB_PASS"`
	DBHost string `envconfig:"DB_HOST" default:"127.0.0.1:3306"`
	DBName string `envconfig:"DB_NAME" default:"booking_app"`

	SMTPHost string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"587"`
	MailUser string `envconfig:"GMAIL_USER"`
	MailPass string `envconfig:"GMAIL_PASS"`

	StaticDir string `envconfig:"STATIC_DIR" default:"./public"`
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load(".env")

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		log.Fatalf("Gagal baca konfigurasi: %v", err)
	}
	return env
}

// MailConfigured reports whether SMTP credentials are set.
func (e Env) MailConfigured() bool {
	return e.MailUser != "" && e.MailPass != ""
}
