package engine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска движка
type Config struct {
	Port     int    `env:"DS_PORT" envDefault:"8080"`
	SavePath string `env:"DS_SAVE_PATH" envDefault:"deepstore.db"`

	// Seed - зерно мира. 0 - взять от текущего времени.
	Seed int64 `env:"DS_SEED" envDefault:"0"`

	// PickupDelay - через сколько тиков выпавший предмет можно подобрать.
	PickupDelay int `env:"DS_DROP_PICKUP_DELAY" envDefault:"10"`

	TickInterval time.Duration `env:"DS_TICK_INTERVAL" envDefault:"50ms"`
	SaveInterval time.Duration `env:"DS_SAVE_INTERVAL" envDefault:"30s"`

	WorldWidth  int `env:"DS_WORLD_WIDTH" envDefault:"32"`
	WorldHeight int `env:"DS_WORLD_HEIGHT" envDefault:"32"`
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		Port:         8080,
		SavePath:     "deepstore.db",
		PickupDelay:  10,
		TickInterval: 50 * time.Millisecond,
		SaveInterval: 30 * time.Second,
		WorldWidth:   32,
		WorldHeight:  32,
	}
}

// LoadConfig читает конфиг из окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.PickupDelay < 0 {
		cfg.PickupDelay = 0
	}
	if cfg.WorldWidth <= 0 || cfg.WorldHeight <= 0 {
		return Config{}, fmt.Errorf("world size must be positive, got %dx%d", cfg.WorldWidth, cfg.WorldHeight)
	}
	return cfg, nil
}
