package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanamatch/internal/httpserver"
	"github.com/robalobadob/kanamatch/internal/lexicon"
	"github.com/robalobadob/kanamatch/internal/store"
	"github.com/robalobadob/kanamatch/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	alphabet, err := loadAlphabet()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load symbol set")
	}
	dict, err := loadDictionary(alphabet)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	nWords, nSyms := dict.Stats()
	log.Info().Int("words", nWords).Int("symbols", nSyms).Msg("dictionary ready")

	mem, err := store.NewMemoryStore(getEnvInt("SESSION_CACHE_SIZE", store.DefaultSize))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}

	secret := getEnv("JWT_SECRET", "dev-secret-change-me")
	if secret == "dev-secret-change-me" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	srv := httpserver.New(mem, dict, httpserver.Config{
		Rows:         getEnvInt("BOARD_ROWS", 8),
		Cols:         getEnvInt("BOARD_COLS", 8),
		Secret:       secret,
		TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		DailySalt:    getEnv("DAILY_SALT", "kanamatch"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting kanamatch server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadAlphabet returns SYMBOLS (comma or whitespace separated) when set,
// else the embedded level-1 kana set.
func loadAlphabet() ([]lexicon.Symbol, error) {
	if s := os.Getenv("SYMBOLS"); s != "" {
		return words.ParseAlphabet(s), nil
	}
	return words.DefaultAlphabet()
}

// loadDictionary picks the word source: WORDS_DB, then WORDS_FILE, then the
// embedded starter list.
func loadDictionary(alphabet []lexicon.Symbol) (*words.Dictionary, error) {
	if dsn := os.Getenv("WORDS_DB"); dsn != "" {
		db, err := openDB(dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		log.Info().Str("db", dsn).Msg("loading words from database")
		return loadDBDictionary(ctx, db, alphabet)
	}
	if path := os.Getenv("WORDS_FILE"); path != "" {
		log.Info().Str("file", path).Msg("loading words from file")
		return words.LoadFile(path, alphabet)
	}
	return words.Default(alphabet)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}
