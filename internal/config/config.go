package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"trailpace/internal/analysis"
	"trailpace/internal/route"
)

// Config represents the application configuration
type Config struct {
	Solver   SolverConfig   `json:"solver"`
	Resample ResampleConfig `json:"resample"`
	Plan     PlanConfig     `json:"plan"`
	Slopes   SlopesConfig   `json:"slopes"`
	Display  DisplayConfig  `json:"display"`
}

// SolverConfig bounds the flat speed search
type SolverConfig struct {
	MinSpeed         float64 `json:"min_speed"` // m/s
	MaxSpeed         float64 `json:"max_speed"` // m/s
	MaxIterations    int     `json:"max_iterations"`
	Precision        float64 `json:"precision"` // seconds
	BracketTolerance float64 `json:"bracket_tolerance"`
}

// ResampleConfig controls GPX point reduction
type ResampleConfig struct {
	MinSpacing float64 `json:"min_spacing"` // meters
}

// PlanConfig holds the defaults used when no flags are given
type PlanConfig struct {
	Model      string `json:"model"`
	TargetTime string `json:"target_time"` // hh:mm:ss
}

// SlopesConfig is the grid of the slope reference table, in percent
type SlopesConfig struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
	Step float64 `json:"step"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// Environment variables overriding the config file
const (
	EnvModel      = "TRAILPACE_MODEL"
	EnvTarget     = "TRAILPACE_TARGET"
	EnvMinSpacing = "TRAILPACE_MIN_SPACING"
	EnvUnits      = "TRAILPACE_UNITS"
)

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			MinSpeed:         analysis.DefaultMinSpeed,
			MaxSpeed:         analysis.DefaultMaxSpeed,
			MaxIterations:    analysis.DefaultMaxIterations,
			Precision:        analysis.DefaultPrecision,
			BracketTolerance: analysis.DefaultBracketTolerance,
		},
		Resample: ResampleConfig{
			MinSpacing: route.DefaultMinSpacing,
		},
		Plan: PlanConfig{
			Model:      "minetti",
			TargetTime: "06:15:30",
		},
		Slopes: SlopesConfig{
			From: -30,
			To:   30,
			Step: 5,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
		},
	}
}

// Load reads the configuration from ~/.trailpace/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path, filling missing values with
// defaults
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Solver.MinSpeed == 0 {
		c.Solver.MinSpeed = defaults.Solver.MinSpeed
	}
	if c.Solver.MaxSpeed == 0 {
		c.Solver.MaxSpeed = defaults.Solver.MaxSpeed
	}
	if c.Solver.MaxIterations == 0 {
		c.Solver.MaxIterations = defaults.Solver.MaxIterations
	}
	if c.Solver.Precision == 0 {
		c.Solver.Precision = defaults.Solver.Precision
	}
	if c.Resample.MinSpacing == 0 {
		c.Resample.MinSpacing = defaults.Resample.MinSpacing
	}
	if c.Plan.Model == "" {
		c.Plan.Model = defaults.Plan.Model
	}
	if c.Plan.TargetTime == "" {
		c.Plan.TargetTime = defaults.Plan.TargetTime
	}
	if c.Slopes.Step == 0 {
		c.Slopes = defaults.Slopes
	}
	if c.Display.DistanceUnit == "" {
		c.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
}

// ApplyEnv overrides config values from the environment. A .env file in the
// working directory is loaded first if present.
func (c *Config) ApplyEnv() error {
	// Missing .env is fine
	_ = godotenv.Load()

	if v := os.Getenv(EnvModel); v != "" {
		c.Plan.Model = v
	}
	if v := os.Getenv(EnvTarget); v != "" {
		c.Plan.TargetTime = v
	}
	if v := os.Getenv(EnvMinSpacing); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid %s: %q", EnvMinSpacing, v)
		}
		c.Resample.MinSpacing = f
	}
	if v := os.Getenv(EnvUnits); v != "" {
		c.Display.DistanceUnit = strings.ToLower(v)
	}
	return nil
}

// SaveTo writes the configuration to path
func SaveTo(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return SaveTo(path, &example)
}

// Validate checks that the config values are usable
func (c *Config) Validate() error {
	if err := c.SolverConfig().Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}

	if c.Resample.MinSpacing < 0 {
		return fmt.Errorf("resample.min_spacing must not be negative, got %v", c.Resample.MinSpacing)
	}

	if _, err := analysis.ModelByName(c.Plan.Model); err != nil {
		return fmt.Errorf("plan.model: %w", err)
	}
	if _, err := analysis.ParseDuration(c.Plan.TargetTime); err != nil {
		return fmt.Errorf("plan.target_time: %w", err)
	}

	if c.Slopes.Step <= 0 || c.Slopes.To <= c.Slopes.From {
		return fmt.Errorf("slopes must satisfy from < to and step > 0, got from=%v to=%v step=%v",
			c.Slopes.From, c.Slopes.To, c.Slopes.Step)
	}

	if c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}

	return nil
}

// SolverConfig converts the solver section for the analysis package
func (c *Config) SolverConfig() analysis.SolverConfig {
	return analysis.SolverConfig{
		MinSpeed:         c.Solver.MinSpeed,
		MaxSpeed:         c.Solver.MaxSpeed,
		MaxIterations:    c.Solver.MaxIterations,
		Precision:        c.Solver.Precision,
		BracketTolerance: c.Solver.BracketTolerance,
	}
}

// ResampleConfig converts the resample section for the route package
func (c *Config) ResampleConfig() route.ResampleConfig {
	return route.ResampleConfig{MinSpacing: c.Resample.MinSpacing}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trailpace"), nil
}
