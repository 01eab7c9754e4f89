package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
)

type Config struct {
	Server ServerSettings `mapstructure:"server"`
	Game   GameSettings   `mapstructure:"game"`
}

type ServerSettings struct {
	Port            string        `mapstructure:"port"`
	LogLevel        string        `mapstructure:"loglevel"`
	ShutdownTimeout time.Duration `mapstructure:"shutdowntimeout"`
	ChatRate        float64       `mapstructure:"chatrate"`
	ChatBurst       int           `mapstructure:"chatburst"`
}

type GameSettings struct {
	TotalRounds         int  `mapstructure:"totalrounds"`
	TurnSeconds         int  `mapstructure:"turnseconds"`
	GraceSeconds        int  `mapstructure:"graceseconds"`
	WordChoices         int  `mapstructure:"wordchoices"`
	AutoSkipDrawerLeave bool `mapstructure:"autoskipdrawerleave"`
}

// Rules maps game settings onto the engine's rule set.
func (g GameSettings) Rules() engine.Rules {
	return engine.Rules{
		TotalRounds:         g.TotalRounds,
		TurnSeconds:         g.TurnSeconds,
		GraceSeconds:        g.GraceSeconds,
		WordChoices:         g.WordChoices,
		AutoSkipDrawerLeave: g.AutoSkipDrawerLeave,
	}
}

// Load reads configuration with priority env > config file > defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("server")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.loglevel", "LOG_LEVEL")
	v.BindEnv("game.totalrounds", "TOTAL_ROUNDS")
	v.BindEnv("game.turnseconds", "TURN_SECONDS")
	v.BindEnv("game.autoskipdrawerleave", "AUTO_SKIP_DRAWER_LEAVE")

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.loglevel", "info")
	v.SetDefault("server.shutdowntimeout", "10s")
	v.SetDefault("server.chatrate", 10.0)
	v.SetDefault("server.chatburst", 20)

	v.SetDefault("game.totalrounds", 3)
	v.SetDefault("game.turnseconds", 80)
	v.SetDefault("game.graceseconds", 3)
	v.SetDefault("game.wordchoices", 3)
	v.SetDefault("game.autoskipdrawerleave", true)

	if err := v.ReadInConfig(); err != nil {
		// A config file is optional; env and defaults carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Game.TotalRounds < 1 {
		return nil, fmt.Errorf("game.totalrounds must be at least 1, got %d", cfg.Game.TotalRounds)
	}
	if cfg.Game.TurnSeconds < 1 {
		return nil, fmt.Errorf("game.turnseconds must be at least 1, got %d", cfg.Game.TurnSeconds)
	}
	if cfg.Game.WordChoices < 1 {
		return nil, fmt.Errorf("game.wordchoices must be at least 1, got %d", cfg.Game.WordChoices)
	}

	return &cfg, nil
}
