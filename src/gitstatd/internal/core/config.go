package core

import (
	"fmt"
	"os"

	uber_config "go.uber.org/config"
	"go.uber.org/fx"
)

// ConfigModule provides the configuration provider.
var ConfigModule = fx.Options(
	fx.Provide(NewConfig),
)

// _configPathEnv names an optional YAML file layered over the built-in
// defaults. The daemon's own knobs arrive as flags; the file only tunes
// ambient concerns such as logging.
const _configPathEnv = "GITSTATD_CONFIG"

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"logging": map[string]interface{}{
			"level":       "warn",
			"development": false,
			"encoding":    "console",
		},
	}
}

// NewConfig builds the layered configuration provider: static defaults,
// then the optional file named by GITSTATD_CONFIG, with environment
// variable expansion.
func NewConfig() (uber_config.Provider, error) {
	options := []uber_config.YAMLOption{
		uber_config.Static(defaults()),
	}

	if path := os.Getenv(_configPathEnv); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
		options = append(options, uber_config.File(path))
	}
	options = append(options, uber_config.Expand(os.LookupEnv))

	provider, err := uber_config.NewYAML(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return provider, nil
}
