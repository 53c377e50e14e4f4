// Package config holds the migration run description: the two endpoints,
// the per-table specs and the global knobs. Files are loaded through viper
// (YAML or JSON); ad-hoc runs build the same structures from CLI flags.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"db-shuttle/internal/errs"
)

// DefaultBatchSize is the number of rows moved per read/write cycle when
// neither the config file nor the table spec overrides it.
const DefaultBatchSize = 1000

// TableSpec is the user-supplied description of one table migration.
type TableSpec struct {
	Name            string   `mapstructure:"name"`
	AnonymizeFields []string `mapstructure:"anonymizeFields"`
	ExcludeFields   []string `mapstructure:"excludeFields"`
	BatchSize       int      `mapstructure:"batchSize"`
}

// Validate checks the spec before any connection is attempted.
func (s TableSpec) Validate() error {
	if s.Name == "" {
		return errs.New(errs.KindConfiguration, "table spec requires a name")
	}
	if s.BatchSize < 0 {
		return errs.Newf(errs.KindConfiguration, "table %s: batch size must not be negative", s.Name)
	}
	return nil
}

// Config is the full description of a migration run.
type Config struct {
	Source      Endpoint
	Destination Endpoint
	Tables      []TableSpec
	BatchSize   int
	Parallel    int
}

// endpointSpec mirrors the structured endpoint object form in config files.
type endpointSpec struct {
	Type     string `mapstructure:"type"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	File     string `mapstructure:"file"`
	SSL      bool   `mapstructure:"ssl"`
}

// Load reads a migration config from a YAML or JSON file.
func Load(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, errs.Newf(errs.KindConfiguration, "unsupported config file extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "failed to read config file", err)
	}

	cfg := &Config{
		BatchSize: DefaultBatchSize,
		Parallel:  1,
	}
	if v.IsSet("batchSize") {
		cfg.BatchSize = v.GetInt("batchSize")
	}
	if v.IsSet("parallel") {
		cfg.Parallel = v.GetInt("parallel")
	}

	src, err := decodeEndpoint(v, "source")
	if err != nil {
		return nil, err
	}
	cfg.Source = src

	dst, err := decodeEndpoint(v, "destination")
	if err != nil {
		return nil, err
	}
	cfg.Destination = dst

	if v.IsSet("tables") {
		if err := v.UnmarshalKey("tables", &cfg.Tables); err != nil {
			return nil, errs.Wrap(errs.KindConfiguration, "failed to parse tables list", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeEndpoint accepts either a URL string or a structured object under
// the given key.
func decodeEndpoint(v *viper.Viper, key string) (Endpoint, error) {
	raw := v.Get(key)
	if raw == nil {
		return Endpoint{}, errs.Newf(errs.KindConfiguration, "%s is required", key)
	}

	if s, ok := raw.(string); ok {
		return ParseEndpoint(s)
	}

	var spec endpointSpec
	if err := v.UnmarshalKey(key, &spec); err != nil {
		return Endpoint{}, errs.Wrap(errs.KindConfiguration, "failed to parse "+key+" endpoint", err)
	}
	engine, ok := engineForScheme(spec.Type)
	if !ok {
		return Endpoint{}, errs.Newf(errs.KindConfiguration, "%s: unsupported engine type %q", key, spec.Type)
	}
	ep := Endpoint{
		Engine:   engine,
		Host:     spec.Host,
		Port:     spec.Port,
		Database: spec.Database,
		Username: spec.Username,
		Password: spec.Password,
		File:     spec.File,
		SSL:      spec.SSL,
	}
	if ep.Port == 0 {
		ep.Port = defaultPorts[engine]
	}
	return ep, nil
}

// Validate checks the whole run description. An empty table list is valid
// and means "discover all source tables at run time".
func (c *Config) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return err
	}
	if err := c.Destination.Validate(); err != nil {
		return err
	}
	if c.BatchSize <= 0 {
		return errs.New(errs.KindConfiguration, "batch size must be positive")
	}
	if c.Parallel <= 0 {
		return errs.New(errs.KindConfiguration, "parallel must be positive")
	}
	for _, t := range c.Tables {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveBatchSize resolves the batch size for one table:
// spec override > global > default.
func (c *Config) EffectiveBatchSize(spec TableSpec) int {
	if spec.BatchSize > 0 {
		return spec.BatchSize
	}
	if c.BatchSize > 0 {
		return c.BatchSize
	}
	return DefaultBatchSize
}
