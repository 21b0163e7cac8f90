// Copyright © 2018 One Concern

// Package cli holds the configuration shared by the domx command line tools.
package cli

import (
	"os"
	"strings"

	"github.com/oneconcern/domx/pkg/catalog"
	"github.com/oneconcern/domx/pkg/dlogger"
	"github.com/oneconcern/domx/pkg/metrics"
	"github.com/oneconcern/domx/pkg/reference"
	"github.com/oneconcern/domx/pkg/xmlobject"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// EnvPrefix prefixes the environment variables overriding the configuration, e.g. DOMX_ROOT.
	EnvPrefix = "DOMX"

	// ConfigEnv names an explicit configuration file.
	ConfigEnv = "DOMX_CONFIG"

	rootKey    = "root"
	systemKey  = "system"
	metricsKey = "metrics"
)

// Config describes the CLI configuration.
type Config struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Root     string `json:"root" yaml:"root" mapstructure:"root"`             // directory of hierarchical catalogs
	System   string `json:"system" yaml:"system" mapstructure:"system"`       // directory of the system catalog
	LogLevel string `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"` // one of none, debug, info, warn, error
	Metrics  string `json:"metrics" yaml:"metrics" mapstructure:"metrics"`    // textfile receiving operation metrics, if any
}

// AddFlags registers the persistent flags of a tool and binds them to v.
func AddFlags(fs *pflag.FlagSet, v *viper.Viper) {
	var level string
	dlogger.AddFlags(fs, &level)
	fs.String(rootKey, catalog.DefaultDir, "Directory holding catalogs opened by name")
	fs.String(systemKey, catalog.DefaultSystemDir, "Directory holding the system catalog")
	fs.String(metricsKey, "", "Write operation metrics to this file, in the prometheus text format")

	for _, name := range []string{dlogger.LogLevelFlag, rootKey, systemKey, metricsKey} {
		_ = v.BindPFlag(name, fs.Lookup(name))
	}
}

// InitConfig reads in the config file and environment variables, if set.
func InitConfig(v *viper.Viper) error {
	if cfg := os.Getenv(ConfigEnv); cfg != "" {
		// Use config file from the environment.
		v.SetConfigFile(cfg)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.domx")
		v.AddConfigPath("/etc/domx")
		v.SetConfigName("domx")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "reading configuration")
	}
	return nil
}

// NewConfig extracts the configuration from v.
func NewConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Env is what a tool runs with.
type Env struct {
	Config  *Config
	Logger  *zap.Logger
	Root    *catalog.Root
	Metrics *metrics.Metrics

	closed bool
}

// Setup builds the logger, catalog root and metrics of the tool name.
// A nil fs stands for the OS file system.
func (c *Config) Setup(name string, fs afero.Fs) (*Env, error) {
	if c.LogLevel == "" {
		c.LogLevel = dlogger.LogLevelError
	}
	base, err := dlogger.GetLogger(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	xmlobject.SetLogger(dlogger.Category(base, "xmlobject"))
	reference.SetLogger(dlogger.Category(base, "reference"))

	env := &Env{
		Config: c,
		Logger: dlogger.Category(base, name),
	}
	opts := []catalog.Option{
		catalog.WithFs(fs),
		catalog.WithDir(c.Root),
		catalog.WithSystemDir(c.System),
		catalog.WithLogger(base),
	}
	if c.Metrics != "" {
		env.Metrics = metrics.New()
		opts = append(opts, catalog.WithMetrics(env.Metrics))
	}
	env.Root = catalog.NewRoot(opts...)
	return env, nil
}

// Close flushes metrics and logs. Only the first call has effect.
func (e *Env) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	var err error
	if e.Metrics != nil {
		if err = e.Metrics.WriteTextfile(e.Config.Metrics); err != nil {
			e.Logger.Error("writing metrics", zap.String("path", e.Config.Metrics), zap.Error(err))
		}
	}
	_ = e.Logger.Sync()
	return err
}
