package config

import (
	"fmt"
	"os"

	"github.com/Velocidex/yaml/v2"
	"github.com/pkg/errors"
)

type loader_func func(self *Loader) (*Config, error)

// Loader is a builder for configurations. Callers compose a chain of
// sources and the first one that produces a config wins:
//
//	config_obj, err := new(config.Loader).
//	     WithFileLoader(flag).
//	     WithEnvLoader("PSLIST_CONFIG").
//	     WithNullLoader().
//	     LoadAndValidate()
type Loader struct {
	verbose bool
	loaders []loader_func
}

func (self *Loader) Copy() *Loader {
	return &Loader{
		verbose: self.verbose,
		loaders: append([]loader_func{}, self.loaders...),
	}
}

func (self *Loader) WithVerbose(verbose bool) *Loader {
	result := self.Copy()
	result.verbose = verbose
	return result
}

// WithFileLoader loads the config from the given file. An empty
// filename is a no-op so command line flags can be passed through
// unconditionally.
func (self *Loader) WithFileLoader(filename string) *Loader {
	result := self.Copy()
	result.loaders = append(result.loaders,
		func(self *Loader) (*Config, error) {
			if filename == "" {
				return nil, nil
			}
			self.Log("Loading config from file %v", filename)
			return read_config_from_file(filename)
		})
	return result
}

// WithEnvLoader loads the config from the filename stored in the
// environment variable.
func (self *Loader) WithEnvLoader(env_var string) *Loader {
	result := self.Copy()
	result.loaders = append(result.loaders,
		func(self *Loader) (*Config, error) {
			env_value := os.Getenv(env_var)
			if env_value == "" {
				return nil, nil
			}
			self.Log("Loading config from env %v (%v)",
				env_var, env_value)
			return read_config_from_file(env_value)
		})
	return result
}

// WithNullLoader terminates the chain with the built in defaults.
func (self *Loader) WithNullLoader() *Loader {
	result := self.Copy()
	result.loaders = append(result.loaders,
		func(self *Loader) (*Config, error) {
			self.Log("Using default config")
			return GetDefaultConfig(), nil
		})
	return result
}

func (self *Loader) Log(format string, v ...interface{}) {
	if self.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", v...)
	}
}

// LoadAndValidate tries each source in order and validates the first
// config that materializes.
func (self *Loader) LoadAndValidate() (*Config, error) {
	for _, loader := range self.loaders {
		config_obj, err := loader(self)
		if err != nil {
			return nil, err
		}
		if config_obj != nil {
			return config_obj, ValidateConfig(config_obj)
		}
	}
	return nil, errors.New("no config found")
}

func read_config_from_file(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	result := &Config{}
	err = yaml.UnmarshalStrict(data, result)
	if err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	return result, nil
}

// ValidateConfig fills in defaults for anything the config source
// left unset.
func ValidateConfig(config_obj *Config) error {
	if config_obj.ProcRoot == "" {
		config_obj.ProcRoot = "/proc"
	}

	if config_obj.Logging == nil {
		config_obj.Logging = GetDefaultConfig().Logging
	}

	if config_obj.Logging.Level == "" {
		config_obj.Logging.Level = "info"
	}

	switch config_obj.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid logging level %q",
			config_obj.Logging.Level)
	}

	return nil
}
