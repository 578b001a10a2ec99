package auth

import (
	"os"
	"time"
)

// Config holds auth configuration
type Config struct {
	Issuer   string
	Secret   string
	TokenTTL time.Duration
}

var (
	DefaultIssuer   = "mediassist-clinical-service"
	DefaultTokenTTL = 12 * time.Hour
)

// LoadConfig reads config from env with sensible defaults.
// You can override with AUTH_ISSUER, AUTH_SECRET and AUTH_TOKEN_TTL.
func LoadConfig() Config {
	issuer := os.Getenv("AUTH_ISSUER")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		// dev fallback; deployments set AUTH_SECRET
		secret = "mediassist-dev-secret"
	}
	ttl := DefaultTokenTTL
	if raw := os.Getenv("AUTH_TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}
	return Config{
		Issuer:   issuer,
		Secret:   secret,
		TokenTTL: ttl,
	}
}
