package config

import (
	"fmt"
	"os"
)

// EnvAuthSecret overrides the JWT signing secret.
const EnvAuthSecret = "AUTH_JWT_SECRET"

// AuthConfig contains bearer token validation configuration.
// Token issuance happens outside this service; only the shared
// secret used to verify signatures lives here.
type AuthConfig struct {
	Secret string `toml:"secret"`
}

// Finalize loads environment overrides and validates the auth configuration.
func (c *AuthConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.Secret = v
	}
}

func (c *AuthConfig) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret required")
	}
	return nil
}
