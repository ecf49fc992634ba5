package describe

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnoverse/rangelogic/internal/symbolic"
	"github.com/gnoverse/rangelogic/rangeset"
)

// Domain is a single closed interval in configuration files.
type Domain struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Config represents the overall configuration: the domain assumed for
// unbound variables and the domains of known variables.
type Config struct {
	Name            string                    `yaml:"name"`
	DefaultDomain   Domain                    `yaml:"default_domain"`
	StrictVariables bool                      `yaml:"strict_variables"`
	Variables       map[string]*rangeset.List `yaml:"variables"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Name:          "rangelogic",
		DefaultDomain: Domain{Min: math.MinInt32, Max: math.MaxInt32},
		Variables:     map[string]*rangeset.List{},
	}
}

// EvalConfig converts c into evaluator settings.
func (c Config) EvalConfig() symbolic.EvalConfig {
	return symbolic.EvalConfig{
		DefaultDomain: rangeset.Range{
			Min: min(c.DefaultDomain.Min, c.DefaultDomain.Max),
			Max: max(c.DefaultDomain.Min, c.DefaultDomain.Max),
		},
		StrictVars: c.StrictVariables,
	}
}

// Env returns an environment binding every configured variable.
func (c Config) Env() *symbolic.Env {
	env := symbolic.NewEnv()
	for name, domain := range c.Variables {
		if domain == nil {
			continue
		}
		env.Set(name, domain)
	}
	return env
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	config := DefaultConfig()
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	return config, nil
}
