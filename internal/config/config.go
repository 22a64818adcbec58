package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Game holds the knobs the engine reads. Durations are wall-clock.
type Game struct {
	MinPlayers       int
	MaxPlayers       int
	DisconnectGrace  time.Duration
	TimerGrace       time.Duration
	DrawingSeconds   int
	GuessSeconds     int
	SkipSeconds      int
	Difficulties     []string
	KnownDifficulty  map[string]bool
	MaxNameLength    int
	MaxGuessLength   int
	MaxDrawingLength int
}

type Config struct {
	Port           string
	Database       string
	LogLevel       string
	MessagesPerSec float64
	MessageBurst   int
	Game           Game
}

func DefaultGame() Game {
	return Game{
		MinPlayers:       2,
		MaxPlayers:       12,
		DisconnectGrace:  30 * time.Second,
		TimerGrace:       2 * time.Second,
		DrawingSeconds:   90,
		GuessSeconds:     30,
		SkipSeconds:      20,
		Difficulties:     []string{"easy", "medium"},
		KnownDifficulty:  map[string]bool{"easy": true, "medium": true, "hard": true},
		MaxNameLength:    20,
		MaxGuessLength:   100,
		MaxDrawingLength: 512 * 1024,
	}
}

// Load reads .env files (if any) and then the DNG_* environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("DNG_PORT", "9000"),
		Database:       getEnv("DNG_DB", "drawnguess"),
		LogLevel:       getEnv("DNG_LOG_LEVEL", "info"),
		MessagesPerSec: 20,
		MessageBurst:   40,
		Game:           DefaultGame(),
	}
	var err error
	if cfg.MessagesPerSec, err = floatEnv("DNG_MESSAGES_PER_SEC", cfg.MessagesPerSec); err != nil {
		return nil, err
	}
	if cfg.MessageBurst, err = intEnv("DNG_MESSAGE_BURST", cfg.MessageBurst); err != nil {
		return nil, err
	}
	g := &cfg.Game
	if g.MinPlayers, err = intEnv("DNG_MIN_PLAYERS", g.MinPlayers); err != nil {
		return nil, err
	}
	if g.MaxPlayers, err = intEnv("DNG_MAX_PLAYERS", g.MaxPlayers); err != nil {
		return nil, err
	}
	if g.DisconnectGrace, err = durationEnv("DNG_DISCONNECT_GRACE", g.DisconnectGrace); err != nil {
		return nil, err
	}
	if g.TimerGrace, err = durationEnv("DNG_TIMER_GRACE", g.TimerGrace); err != nil {
		return nil, err
	}
	if g.DrawingSeconds, err = intEnv("DNG_DRAWING_SECONDS", g.DrawingSeconds); err != nil {
		return nil, err
	}
	if g.GuessSeconds, err = intEnv("DNG_GUESS_SECONDS", g.GuessSeconds); err != nil {
		return nil, err
	}
	if g.SkipSeconds, err = intEnv("DNG_SKIP_SECONDS", g.SkipSeconds); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MaxTurnSeconds caps every turn time limit. Hosts are also held to a 10
// second floor; values from the environment are not.
const MaxTurnSeconds = 600

func (cfg *Config) validate() error {
	if cfg.MessagesPerSec <= 0 || cfg.MessageBurst < 1 {
		return fmt.Errorf("invalid message rate %g/s burst %d", cfg.MessagesPerSec, cfg.MessageBurst)
	}
	g := cfg.Game
	if g.MinPlayers < 2 || g.MaxPlayers < g.MinPlayers {
		return fmt.Errorf("invalid player bounds %d..%d", g.MinPlayers, g.MaxPlayers)
	}
	if g.DisconnectGrace < 0 || g.TimerGrace < 0 {
		return errors.New("negative grace period")
	}
	for _, limit := range []struct {
		name  string
		value int
	}{
		{"DNG_DRAWING_SECONDS", g.DrawingSeconds},
		{"DNG_GUESS_SECONDS", g.GuessSeconds},
		{"DNG_SKIP_SECONDS", g.SkipSeconds},
	} {
		if limit.value < 0 || limit.value > MaxTurnSeconds {
			return fmt.Errorf("env %s: %d outside 0..%d", limit.name, limit.value, MaxTurnSeconds)
		}
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", k, err)
	}
	return n, nil
}

func floatEnv(k string, def float64) (float64, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", k, err)
	}
	return n, nil
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", k, err)
	}
	return d, nil
}
