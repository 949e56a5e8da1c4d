package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// Profile resolution behaviour.
	ProfileResolveTimeout time.Duration
	RefreshMaxAttempts    int
	RefreshBackoffBase    time.Duration

	// Change feed behaviour. The debounce gives read replicas time to catch
	// up before subscribers refetch after a membership change; best-effort.
	ChangeFeedDebounce time.Duration
	ChangeFeedChannel  string

	// External providers.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables, with a .env
// file as a lower-priority source.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "keluargaku-app")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("PROFILE_RESOLVE_TIMEOUT", "5s")
	viper.SetDefault("REFRESH_MAX_ATTEMPTS", 3)
	viper.SetDefault("REFRESH_BACKOFF_BASE", "1s")
	viper.SetDefault("CHANGE_FEED_DEBOUNCE", "1200ms")
	// Must match the channel hardcoded in the notify triggers; changing it
	// requires a migration renaming the channel there too.
	viper.SetDefault("CHANGE_FEED_CHANNEL", "keluargaku_changes")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDurationOr("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RefreshTokenExpiryDuration = parseDurationOr("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.ProfileResolveTimeout = parseDurationOr("PROFILE_RESOLVE_TIMEOUT", 5*time.Second)
	cfg.RefreshMaxAttempts = viper.GetInt("REFRESH_MAX_ATTEMPTS")
	if cfg.RefreshMaxAttempts <= 0 {
		cfg.RefreshMaxAttempts = 3
	}
	cfg.RefreshBackoffBase = parseDurationOr("REFRESH_BACKOFF_BASE", time.Second)

	cfg.ChangeFeedDebounce = parseDurationOr("CHANGE_FEED_DEBOUNCE", 1200*time.Millisecond)
	cfg.ChangeFeedChannel = viper.GetString("CHANGE_FEED_CHANNEL")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
