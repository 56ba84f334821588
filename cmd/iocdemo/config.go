package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the typed configuration of the demo service.
type Config struct {
	Env             string // development | production
	Addr            string
	AppName         string
	GreeterVariant  string
	ShutdownTimeout time.Duration
}

// LoadConfig reads .env files (when present) and populates a Config from the environment.
func LoadConfig(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// .env is optional
	_ = godotenv.Load(files...)

	return &Config{
		Env:             env("IOC_ENV", "development"),
		Addr:            env("IOC_ADDR", ":8080"),
		AppName:         env("IOC_APP_NAME", "iocdemo"),
		GreeterVariant:  env("IOC_GREETER_VARIANT", ""),
		ShutdownTimeout: time.Duration(envInt("IOC_SHUTDOWN_SECONDS", 5)) * time.Second,
	}
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
