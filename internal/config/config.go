package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/benbeisheim/minitchess-backend/internal/engine"
	"github.com/benbeisheim/minitchess-backend/internal/model"
	"gopkg.in/yaml.v2"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr"`
	AllowOrigins    string `yaml:"allow_origins"`
	ReadBufferSize  int    `yaml:"read_buffer_size"`
	WriteBufferSize int    `yaml:"write_buffer_size"`
}

// EngineConfig is the file form of engine.Config. Tables left out of the
// file keep their built-in values; an opening list given for a color
// replaces that color's whole book.
type EngineConfig struct {
	Depth            int                        `yaml:"depth"`
	OpeningPlies     int                        `yaml:"opening_plies"`
	Workers          int                        `yaml:"workers"`
	AcquireTimeoutMs int                        `yaml:"acquire_timeout_ms"`
	PieceValues      map[string]float64         `yaml:"piece_values"`
	Openings         map[string][]OpeningConfig `yaml:"openings"`
}

type OpeningConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3000",
			AllowOrigins:    "http://localhost:5173",
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Engine: EngineConfig{
			Depth:            engine.DefaultDepth,
			OpeningPlies:     engine.DefaultOpeningPlies,
			Workers:          runtime.NumCPU(),
			AcquireTimeoutMs: 5000,
		},
	}
}

// Load reads a yaml file over the defaults. An empty path yields Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Engine.Workers < 1 {
		return fmt.Errorf("%w: engine.workers must be at least 1", ErrInvalidConfig)
	}
	if c.Engine.AcquireTimeoutMs < 0 {
		return fmt.Errorf("%w: engine.acquire_timeout_ms is negative", ErrInvalidConfig)
	}
	_, err := c.Engine.Build()
	return err
}

func (c EngineConfig) AcquireTimeout() time.Duration {
	return time.Duration(c.AcquireTimeoutMs) * time.Millisecond
}

// Build turns the file form into an engine.Config.
func (c EngineConfig) Build() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	cfg.Depth = c.Depth
	cfg.OpeningPlies = c.OpeningPlies

	for name, value := range c.PieceValues {
		t := model.PieceType(name)
		if _, ok := cfg.PieceValues[t]; !ok {
			return engine.Config{}, fmt.Errorf("%w: unknown piece %q", ErrInvalidConfig, name)
		}
		cfg.PieceValues[t] = value
	}

	for name, openings := range c.Openings {
		color, err := model.ParseColor(name)
		if err != nil {
			return engine.Config{}, fmt.Errorf("%w: openings: %v", ErrInvalidConfig, err)
		}
		book := make([]engine.Opening, 0, len(openings))
		for _, o := range openings {
			from, err := model.ParseSquare(o.From)
			if err != nil {
				return engine.Config{}, fmt.Errorf("%w: %s opening: %v", ErrInvalidConfig, color, err)
			}
			to, err := model.ParseSquare(o.To)
			if err != nil {
				return engine.Config{}, fmt.Errorf("%w: %s opening: %v", ErrInvalidConfig, color, err)
			}
			book = append(book, engine.Opening{From: from, To: to})
		}
		cfg.Openings[color] = book
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}
