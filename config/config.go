package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"elevsim/assigner"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "ELEVSIM_CONFIG"

type Arrivals struct {
	Every      int     `yaml:"every"`
	MaxPerTick int     `yaml:"max_per_tick"`
	LobbyFloor int     `yaml:"lobby_floor"`
	LobbyBias  float64 `yaml:"lobby_bias"`
	Seed       uint64  `yaml:"seed"`
}

type Config struct {
	Floors       int           `yaml:"floors"`
	Elevators    int           `yaml:"elevators"`
	Capacity     int           `yaml:"capacity"`
	StartFloor   int           `yaml:"start_floor"`
	Policy       string        `yaml:"policy"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Ticks        int           `yaml:"ticks"`
	Arrivals     Arrivals      `yaml:"arrivals"`
}

func Default() Config {
	return Config{
		Floors:       10,
		Elevators:    3,
		Capacity:     10,
		StartFloor:   0,
		Policy:       assigner.FirstFitName,
		TickInterval: 500 * time.Millisecond,
		Arrivals: Arrivals{
			Every:      1,
			MaxPerTick: 2,
			LobbyFloor: 0,
			LobbyBias:  0.5,
		},
	}
}

// Load reads a YAML file on top of Default. An empty path yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// ResolvePath returns flagPath if set, otherwise the path named by
// ELEVSIM_CONFIG, which may come from the given .env file.
func ResolvePath(flagPath, envFile string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return os.Getenv(EnvConfigPath), nil
}

func (c Config) Validate() error {
	if c.Floors < 1 {
		return fmt.Errorf("floors must be positive, got %d", c.Floors)
	}
	if c.Elevators < 1 {
		return fmt.Errorf("elevators must be positive, got %d", c.Elevators)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.StartFloor < 0 || c.StartFloor >= c.Floors {
		return fmt.Errorf("start_floor %d outside 0..%d", c.StartFloor, c.Floors-1)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick_interval must not be negative, got %v", c.TickInterval)
	}
	if _, err := assigner.ByName(c.Policy); err != nil {
		return err
	}

	a := c.Arrivals
	if a.Every < 1 {
		return fmt.Errorf("arrivals.every must be positive, got %d", a.Every)
	}
	if a.MaxPerTick < 0 {
		return fmt.Errorf("arrivals.max_per_tick must not be negative, got %d", a.MaxPerTick)
	}
	if a.LobbyFloor < 0 || a.LobbyFloor >= c.Floors {
		return fmt.Errorf("arrivals.lobby_floor %d outside 0..%d", a.LobbyFloor, c.Floors-1)
	}
	if a.LobbyBias < 0 || a.LobbyBias > 1 {
		return fmt.Errorf("arrivals.lobby_bias %v outside [0,1]", a.LobbyBias)
	}
	return nil
}
