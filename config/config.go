package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	DBPath      string
	GeomShiftKm float64
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		DBPath:      get("DB_PATH", "farms.db"),
		GeomShiftKm: 5.0,
	}
	if v := os.Getenv("GEOM_SHIFT_KM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.GeomShiftKm = f
		} else {
			log.Printf("[cfg] ignoring bad GEOM_SHIFT_KM=%q", v)
		}
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
