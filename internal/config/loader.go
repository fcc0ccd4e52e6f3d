package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type config struct {
	addr      string
	directory string

	readHeaderTimeout time.Duration
	idleTimeout       time.Duration
	writeTimeout      time.Duration

	maxHeaderBytes int
	maxBodyBytes   int64

	logLevel       string
	metricsEnabled bool
}

func parse() (*config, error) {
	addr := getenv("HTTPD_ADDR", "127.0.0.1:4221")

	directory := getenv("FILES_DIR", "")
	if directory != "" {
		info, err := os.Stat(directory)
		if err != nil {
			return nil, fmt.Errorf("FILES_DIR: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("FILES_DIR: %s is not a directory", directory)
		}
	}

	readHeaderTimeout, err := getenvDuration("HTTPD_READ_HEADER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getenvDuration("HTTPD_IDLE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getenvDuration("HTTPD_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	maxHeaderBytes, err := getenvInt("HTTPD_MAX_HEADER_BYTES", 8<<10)
	if err != nil {
		return nil, err
	}
	maxBodyBytes, err := getenvInt("HTTPD_MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}

	logLevel := getenv("HTTPD_LOG_LEVEL", "info")
	metricsEnabled := getenvBool("HTTPD_METRICS_ENABLED", false)

	return &config{
		addr:              addr,
		directory:         directory,
		readHeaderTimeout: readHeaderTimeout,
		idleTimeout:       idleTimeout,
		writeTimeout:      writeTimeout,
		maxHeaderBytes:    maxHeaderBytes,
		maxBodyBytes:      int64(maxBodyBytes),
		logLevel:          logLevel,
		metricsEnabled:    metricsEnabled,
	}, nil
}

// loadEnvFile loads .env when present; a missing file is fine.
func loadEnvFile() {
	_ = godotenv.Load()
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return n, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}
