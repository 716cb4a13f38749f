package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every setting the planner process needs, whether supplied
// on the command line or through the environment. Flags win over .env
// values, which win over the defaults below.
type Config struct {
	Port    int      `validate:"gt=0,lt=65536"`
	Env     string   `validate:"oneof=development staging production test"`
	ApiKeys []string `validate:"min=1,dive,required"`

	GTFSPath     string        `validate:"required"`
	MaxTransfers int           `validate:"gte=0,lte=2"`
	QueryBudget  time.Duration `validate:"gt=0"`

	RateLimit int `validate:"gte=0"`

	GeocoderBaseURL   string `validate:"required,url"`
	GeocoderAPIKey    string
	GeocoderUserAgent string `validate:"required"`
}

// Load parses flags from args (os.Args[1:] in production, a fixed slice in
// tests), layering .env values underneath, then validates the result.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("transitplanner", flag.ContinueOnError)

	cfg := &Config{}
	var apiKeysFlag string

	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&cfg.Env, "env", "development", "Environment (development|staging|production|test)")
	fs.StringVar(&apiKeysFlag, "api-keys", "test", "Comma-separated API keys")
	fs.StringVar(&cfg.GTFSPath, "gtfs-path", "", "Path to a GTFS feed directory or .zip archive")
	fs.IntVar(&cfg.MaxTransfers, "max-transfers", 2, "Default maximum transfers per journey (0-2)")
	fs.DurationVar(&cfg.QueryBudget, "query-budget", 120*time.Second, "Wall-clock budget per query")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 10, "Requests per second per API key (0 disables all requests)")
	fs.StringVar(&cfg.GeocoderBaseURL, "geocoder-base-url", envOrDefault("GEOCODER_BASE_URL", "https://maps.googleapis.com/maps/api/geocode/json"), "Geocoder provider base URL")
	fs.StringVar(&cfg.GeocoderAPIKey, "geocoder-api-key", envOrDefault("GEOCODER_API_KEY", ""), "Geocoder provider API key")
	fs.StringVar(&cfg.GeocoderUserAgent, "geocoder-user-agent", "transitplanner/1.0", "User-Agent sent to the geocoder provider")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if apiKeysFlag != "" {
		for _, k := range strings.Split(apiKeysFlag, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.ApiKeys = append(cfg.ApiKeys, k)
			}
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
