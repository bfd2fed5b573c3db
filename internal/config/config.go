package config

import (
	"os"
	"time"

	"dota-scout/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type TTLConfig struct {
	Team   time.Duration
	Player time.Duration
	Match  time.Duration
	Heroes time.Duration
	Items  time.Duration
}

type Config struct {
	ServerPort string
	LogLevel   string

	OpenDotaBaseURL string
	OpenDotaAPIKey  string
	StratzBaseURL   string
	StratzAPIToken  string
	CDNBaseURL      string

	// Empty path disables raw-payload fixture capture.
	FixtureDBPath string

	TTL TTLConfig
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		OpenDotaBaseURL: getEnv("OPENDOTA_BASE_URL", "https://api.opendota.com/api"),
		OpenDotaAPIKey:  getEnv("OPENDOTA_API_KEY", ""),
		StratzBaseURL:   getEnv("STRATZ_BASE_URL", "https://api.stratz.com/api/v1"),
		StratzAPIToken:  getEnv("STRATZ_API_TOKEN", ""),
		CDNBaseURL:      getEnv("CDN_BASE_URL", "https://cdn.jsdelivr.net/gh/odota/dotaconstants/build"),
		FixtureDBPath:   getEnv("FIXTURE_DB_PATH", ""),
		TTL: TTLConfig{
			Team:   getEnvDuration("TEAM_DATA_TTL", constants.TeamDataTTL),
			Player: getEnvDuration("PLAYER_DATA_TTL", constants.PlayerDataTTL),
			Match:  getEnvDuration("MATCH_DATA_TTL", constants.MatchDataTTL),
			Heroes: getEnvDuration("HERO_LIST_TTL", constants.HeroListTTL),
			Items:  getEnvDuration("ITEM_LIST_TTL", constants.ItemListTTL),
		},
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("opendota_base_url", cfg.OpenDotaBaseURL).
		Bool("fixture_capture", cfg.FixtureDBPath != "").
		Dur("team_ttl", cfg.TTL.Team).
		Dur("player_ttl", cfg.TTL.Player).
		Dur("match_ttl", cfg.TTL.Match).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

var Module = fx.Provide(Load)
