package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable limits of a Scheduler. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// RecursionLimit caps nested Measure (and, separately, Arrange) calls.
	RecursionLimit int `toml:"recursion_limit" yaml:"recursion_limit"`

	// TimeBudget is the wall-clock time a pass may run before yielding.
	// Zero disables the check.
	TimeBudget time.Duration `toml:"time_budget" yaml:"time_budget"`

	// CheckInterval is how many nodes a phase processes between clock reads.
	CheckInterval int `toml:"check_interval" yaml:"check_interval"`

	// MaxOuterIterations caps measure/arrange/notify rounds per pass.
	MaxOuterIterations int `toml:"max_outer_iterations" yaml:"max_outer_iterations"`

	// PoolCapacity is how many free requests each queue keeps for reuse.
	PoolCapacity int `toml:"pool_capacity" yaml:"pool_capacity"`

	// PoolReserve is the free-request low-water mark. Below it, adds
	// escalate to the top of the tree instead of consuming more requests.
	PoolReserve int `toml:"pool_reserve" yaml:"pool_reserve"`

	// MaxRequests caps live requests per queue; 0 means unlimited.
	MaxRequests int `toml:"max_requests" yaml:"max_requests"`
}

// DefaultConfig returns the limits used when no option overrides them.
func DefaultConfig() Config {
	return Config{
		RecursionLimit:     4096,
		TimeBudget:         306 * time.Millisecond,
		CheckInterval:      153,
		MaxOuterIterations: 153,
		PoolCapacity:       153,
		PoolReserve:        8,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.RecursionLimit < 1:
		return fmt.Errorf("layout: recursion limit must be at least 1, got %d", c.RecursionLimit)
	case c.TimeBudget < 0:
		return fmt.Errorf("layout: time budget cannot be negative, got %s", c.TimeBudget)
	case c.CheckInterval < 1:
		return fmt.Errorf("layout: check interval must be at least 1, got %d", c.CheckInterval)
	case c.MaxOuterIterations < 1:
		return fmt.Errorf("layout: max outer iterations must be at least 1, got %d", c.MaxOuterIterations)
	case c.PoolCapacity < 0:
		return fmt.Errorf("layout: pool capacity cannot be negative, got %d", c.PoolCapacity)
	case c.PoolReserve < 0 || c.PoolReserve > c.PoolCapacity:
		return fmt.Errorf("layout: pool reserve must be between 0 and pool capacity (%d), got %d", c.PoolCapacity, c.PoolReserve)
	case c.MaxRequests < 0:
		return fmt.Errorf("layout: max requests cannot be negative, got %d", c.MaxRequests)
	}
	return nil
}

// LoadConfig reads a Config from a .toml, .yaml or .yml file. Fields the
// file omits keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, WrapError(CodeInvalidConfig, err, "read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, WrapError(CodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, WrapError(CodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return cfg, NewError(CodeInvalidConfig, "unsupported config extension %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, WrapError(CodeInvalidConfig, err, "validate %s", path)
	}
	return cfg, nil
}

func (c Config) apply(s *Scheduler) {
	s.recursionLimit = c.RecursionLimit
	s.timeBudget = c.TimeBudget
	s.checkInterval = c.CheckInterval
	s.maxOuterIterations = c.MaxOuterIterations
	s.poolCapacity = c.PoolCapacity
	s.poolReserve = c.PoolReserve
	s.maxRequests = c.MaxRequests
}

// Config returns the limits the scheduler is running with.
func (s *Scheduler) Config() Config {
	return s.config()
}

func (s *Scheduler) config() Config {
	return Config{
		RecursionLimit:     s.recursionLimit,
		TimeBudget:         s.timeBudget,
		CheckInterval:      s.checkInterval,
		MaxOuterIterations: s.maxOuterIterations,
		PoolCapacity:       s.poolCapacity,
		PoolReserve:        s.poolReserve,
		MaxRequests:        s.maxRequests,
	}
}
