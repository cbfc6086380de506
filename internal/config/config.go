package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"insecticide/internal/storage"
)

// Config holds the resolved configuration. It is read-only once built.
type Config struct {
	// Storage settings
	StoreDir         string
	ConfigStore      string
	ConfigDBFileName string
	RedisAddr        string
	ResultLog        string
	ReportsFileName  string
	ResultDSN        string

	// Run settings
	TestDir     string
	MetricsFile string

	// Logging settings
	LogDir   string
	LogLevel string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line overrides
type Flags struct {
	ConfigFile   string
	TestDir      string
	MetricsFile  string
	NoProgress   bool
	OpenFailures bool
}

// New creates a new Config with defaults
func New() (*Config, error) {
	return Resolve(nil, Flags{})
}

// ReadValues loads the dotenv file into the process environment and reads the JSON file.
// A missing dotenv file is ignored. Environment overrides are not part of the result.
func ReadValues(path, envFile string) (map[string]string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, configErr("", errors.Wrapf(err, "load %s", envFile))
		}
	}

	values, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// LoadFile reads a flat JSON object of string values
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErr("", errors.Wrap(err, "read config file"))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, configErr("", errors.Wrapf(err, "parse %s", path))
	}

	values := make(map[string]string, len(raw))
	for key, msg := range raw {
		var v string
		if err := json.Unmarshal(msg, &v); err != nil {
			return nil, configErr(key, errors.New("value must be a string"))
		}
		values[key] = v
	}
	return values, nil
}

// ApplyEnv overrides known keys with INSECTICIDE_<KEY> variables
func ApplyEnv(values map[string]string, lookup func(string) (string, bool)) {
	for key := range Defaults() {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(key)); ok {
			values[key] = v
		}
	}
}

// WithEnv returns a copy of values with environment overrides applied
func WithEnv(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, val := range values {
		out[key] = val
	}
	ApplyEnv(out, os.LookupEnv)
	return out
}

// Load pushes file values into the store and resolves the config from what the store holds.
// Environment overrides apply to this process only and are never stored.
func Load(ctx context.Context, store storage.ConfigStore, values map[string]string, flags Flags) (*Config, error) {
	if err := store.SetMany(ctx, values); err != nil {
		return nil, err
	}
	stored, err := store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(WithEnv(stored), flags)
}

// Resolve builds a Config from raw values, filling defaults for absent keys
func Resolve(values map[string]string, flags Flags) (*Config, error) {
	v := Defaults()
	for key, val := range values {
		v[key] = val
	}

	cfg := &Config{
		StoreDir:         v[KeyStoreDir],
		ConfigStore:      strings.ToLower(v[KeyConfigStore]),
		ConfigDBFileName: v[KeyConfigDBFileName],
		RedisAddr:        v[KeyRedisAddr],
		ResultLog:        strings.ToLower(v[KeyResultLog]),
		ReportsFileName:  v[KeyReportsFileName],
		ResultDSN:        v[KeyResultDSN],
		TestDir:          v[KeyTestDir],
		MetricsFile:      v[KeyMetricsFile],
		LogDir:           v[KeyLogDir],
		LogLevel:         v[KeyLogLevel],
		Flags:            flags,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)

	if flags.TestDir != "" {
		cfg.TestDir = flags.TestDir
	}
	if flags.MetricsFile != "" {
		cfg.MetricsFile = flags.MetricsFile
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TestDir == "" {
		return configErr(KeyTestDir, errors.New("missing value"))
	}
	if c.StoreDir == "" {
		return configErr(KeyStoreDir, errors.New("missing value"))
	}

	switch c.ConfigStore {
	case StoreLevelDB:
		if c.ConfigDBFileName == "" {
			return configErr(KeyConfigDBFileName, errors.New("missing value"))
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return configErr(KeyRedisAddr, errors.New("required when config_store is redis"))
		}
	default:
		return configErr(KeyConfigStore, errors.Errorf("unknown store %q", c.ConfigStore))
	}

	switch c.ResultLog {
	case ResultLogJSON:
		if c.ReportsFileName == "" {
			return configErr(KeyReportsFileName, errors.New("missing value"))
		}
	case ResultLogMySQL, ResultLogPostgres:
		if c.ResultDSN == "" {
			return configErr(KeyResultDSN, errors.Errorf("required when result_log is %s", c.ResultLog))
		}
	default:
		return configErr(KeyResultLog, errors.Errorf("unknown result log %q", c.ResultLog))
	}
	return nil
}

// CheckTestDir verifies the test directory exists
func (c *Config) CheckTestDir() error {
	info, err := os.Stat(c.TestDir)
	if err != nil {
		return configErr(KeyTestDir, errors.Wrapf(err, "test directory %s", c.TestDir))
	}
	if !info.IsDir() {
		return configErr(KeyTestDir, errors.Errorf("%s is not a directory", c.TestDir))
	}
	return nil
}

// GetConfigDBPath returns the path of the embedded config store
func (c *Config) GetConfigDBPath() string {
	return filepath.Join(c.StoreDir, c.ConfigDBFileName)
}

// GetReportsPath returns the absolute path of the JSON result log.
// Run and report commands resolve the same file regardless of cwd.
func (c *Config) GetReportsPath() string {
	p := filepath.Join(c.StoreDir, c.ReportsFileName)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
