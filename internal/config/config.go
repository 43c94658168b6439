package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	TokenFile   string
	LogLevel    string
	Debug       bool
	FeaturedMax int
	RelatedMax  int
}

func LoadConfig() (*Config, error) {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	httpTimeout := 30 * time.Second
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", raw, err)
		}
		httpTimeout = parsed
	}

	tokenFile := os.Getenv("TOKEN_FILE")
	if tokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		tokenFile = filepath.Join(home, ".blogcli", "token")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	debug := false
	if raw := os.Getenv("DEBUG"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			debug = parsed
		}
	}

	featuredMax := 2 // default value
	if raw := os.Getenv("FEATURED_MAX"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			featuredMax = parsed
		}
	}

	relatedMax := 3 // default value
	if raw := os.Getenv("RELATED_MAX"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			relatedMax = parsed
		}
	}

	return &Config{
		APIBaseURL:  apiURL,
		HTTPTimeout: httpTimeout,
		TokenFile:   tokenFile,
		LogLevel:    logLevel,
		Debug:       debug,
		FeaturedMax: featuredMax,
		RelatedMax:  relatedMax,
	}, nil
}
