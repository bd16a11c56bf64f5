// Command devtoken prints a bearer token for calling the write endpoints
// locally when AUTH_ENABLED=true.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/pkg/jwt"
	"library-catalog/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init("development", "info")

	subject := flag.String("sub", "dev", "token subject")
	role := flag.String("role", "admin", "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (default JWT_ACCESS_EXPIRY minutes)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.App.Environment == "production" {
		log.Fatal().Msg("refusing to mint tokens in production")
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	}

	token, err := jwt.NewManager(cfg.JWT.Secret, lifetime, cfg.App.Name).GenerateAccessToken(*subject, *role)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign token")
	}

	fmt.Fprintln(os.Stdout, token)
}
