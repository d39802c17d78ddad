// devtoken выпускает HS256-токен для локальной разработки (AUTH_PROVIDER=jwt).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"troubleshoot-titans/internal/authutils"
	"troubleshoot-titans/internal/utils"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	userID := flag.String("user", "", "идентификатор пользователя")
	name := flag.String("name", "", "отображаемое имя")
	validity := flag.Duration("ttl", 24*time.Hour, "срок действия токена")
	flag.Parse()

	if *userID == "" {
		log.Fatal().Msg("-user is required")
	}

	secret, err := utils.ReadOptionalSecret("jwt_secret")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read jwt_secret")
	}
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		log.Fatal().Msg("jwt_secret secret or JWT_SECRET env is required")
	}

	token, err := authutils.GenerateToken(secret, *userID, *name, *validity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate token")
	}
	log.Info().Str("user", *userID).Dur("ttl", *validity).Msg("token issued")
	fmt.Println(token)
}
