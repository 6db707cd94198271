// Package main runs a local stand-in for the remote to-do service, for
// development against localhost instead of the hosted API.
package main

import (
	"flag"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"todocli/internal/stubserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	secret := flag.String("secret", "todostub-dev-secret", "JWT signing secret")
	seed := flag.String("seed-user", "dev@example.com:password", "email:password account to pre-register")
	flag.Parse()

	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})
	log := zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)

	srv := stubserver.New(*secret, log)
	if *seed != "" {
		email, password, ok := splitSeed(*seed)
		if !ok {
			log.Fatal().Str("seed", *seed).Msg("seed-user must be email:password")
		}
		srv.AddUser(email, password)
		log.Info().Str("email", email).Msg("seeded account")
	}

	if err := srv.Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func splitSeed(s string) (email, password string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], i > 0 && i < len(s)-1
		}
	}
	return "", "", false
}
