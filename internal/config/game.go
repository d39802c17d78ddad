package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// GameConfig - игровые настройки: паузы контроллера, очки, пороги, лимиты мини-игр.
type GameConfig struct {
	RevealDelay time.Duration `yaml:"reveal_delay" env:"GAME_REVEAL_DELAY" env-default:"1.2s"`
	RetryDelay  time.Duration `yaml:"retry_delay" env:"GAME_RETRY_DELAY" env-default:"1.5s"`

	GamePoints      int64 `yaml:"game_points" env:"GAME_COMPLETION_POINTS" env-default:"100"`
	QuizPoints      int64 `yaml:"quiz_points" env:"QUIZ_COMPLETION_POINTS" env-default:"50"`
	QuizPassPercent int   `yaml:"quiz_pass_percent" env:"QUIZ_PASS_PERCENT" env-default:"70"`

	LeaderboardSize int `yaml:"leaderboard_size" env:"LEADERBOARD_SIZE" env-default:"10"`

	ReflexMinDelay      time.Duration `yaml:"reflex_min_delay" env:"REFLEX_MIN_DELAY" env-default:"1s"`
	ReflexMaxDelay      time.Duration `yaml:"reflex_max_delay" env:"REFLEX_MAX_DELAY" env-default:"5s"`
	ScrambleMaxAttempts int           `yaml:"scramble_max_attempts" env:"SCRAMBLE_MAX_ATTEMPTS" env-default:"3"`
	WordGuessMaxWrong   int           `yaml:"wordguess_max_wrong" env:"WORDGUESS_MAX_WRONG" env-default:"6"`
}

// LoadGameConfig читает YAML по пути path с переопределением из env.
// Если файла нет, используются только переменные окружения и значения по умолчанию.
func LoadGameConfig(path string) (*GameConfig, error) {
	var cfg GameConfig
	if path != "" {
		err := cleanenv.ReadConfig(path, &cfg)
		if err == nil {
			return &cfg, cfg.validate()
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ошибка чтения игровой конфигурации '%s': %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки игровой конфигурации: %w", err)
	}
	return &cfg, cfg.validate()
}

func (g *GameConfig) validate() error {
	if g.ReflexMinDelay <= 0 || g.ReflexMaxDelay < g.ReflexMinDelay {
		return fmt.Errorf("некорректный диапазон задержки reflex: %v..%v", g.ReflexMinDelay, g.ReflexMaxDelay)
	}
	if g.QuizPassPercent < 0 || g.QuizPassPercent > 100 {
		return fmt.Errorf("QUIZ_PASS_PERCENT вне диапазона 0..100: %d", g.QuizPassPercent)
	}
	if g.ScrambleMaxAttempts < 1 || g.WordGuessMaxWrong < 1 {
		return errors.New("лимиты попыток мини-игр должны быть положительными")
	}
	return nil
}
