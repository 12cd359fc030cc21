package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	HTTPPort       string
	DatabaseDSN    string
	CORSOrigins    string
	PrinterAddr    string  // "tcp:host:port" or a character device path; empty disables printing
	ScalePort      string  // serial device of the scale (ex: /dev/ttyUSB0); empty disables the poller
	ScaleBaud      int
	LowWeightGrams float64 // below this the UI shows the low physical stock warning
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=mercado port=5432 sslmode=disable"),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		PrinterAddr:    getEnv("PRINTER_ADDR", ""),
		ScalePort:      getEnv("SCALE_PORT", ""),
		ScaleBaud:      getEnvInt("SCALE_BAUD", 115200),
		LowWeightGrams: getEnvFloat("LOW_WEIGHT_GRAMS", 100),
	}

	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=mercado port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}
	if cfg.PrinterAddr == "" {
		log.Println("[WARN] PRINTER_ADDR not set, receipts will not be printed.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[WARN] %s=%q is not a number, using %d", key, v, def)
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[WARN] %s=%q is not a number, using %g", key, v, def)
	}
	return def
}
