// Command taskwright loads the effective configuration and prints it
// with sensitive values masked. It is the entry point the surrounding
// tool builds on; everything interesting lives in internal/config.
package main

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	"github.com/taskwright/taskwright/internal/config"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.New(config.WithLogger(log))
	if err := cfg.Load(); err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	if level, err := cfg.GetString("logging.level"); err == nil {
		if parsed, perr := zerolog.ParseLevel(level); perr == nil {
			zerolog.SetGlobalLevel(parsed)
		}
	}

	log.Debug().
		Str("global", cfg.GlobalPath()).
		Str("local", cfg.LocalPath()).
		Msg("configuration files")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg.GetMasked()); err != nil {
		log.Fatal().Err(err).Msg("encoding configuration")
	}
}
