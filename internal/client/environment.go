package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

const (
	// ProductionURL is the base URL of the production registry.
	ProductionURL = "https://validation-v1.brainsimulation.eu"
	// DevURL is the base URL of the development registry.
	DevURL = "https://validation-dev.brainsimulation.eu"

	// EnvironmentConfigFile holds the base URLs of custom environments.
	EnvironmentConfigFile = "config.json"
)

type environmentConfig struct {
	URL string `json:"url"`
}

// ResolveEnvironment translates an environment name into a registry base URL.
// "production" (or empty) and "dev" are built in; any other name is looked up
// in config.json in the working directory.
func ResolveEnvironment(environment string) (string, error) {
	switch environment {
	case "", "production":
		return ProductionURL, nil
	case "dev":
		return DevURL, nil
	}

	data, err := os.ReadFile(EnvironmentConfigFile)
	if err != nil {
		return "", errors.WithMessagef(err, "cannot load environment %q: %s not readable", environment, EnvironmentConfigFile)
	}

	var environments map[string]environmentConfig
	if err := json.Unmarshal(data, &environments); err != nil {
		return "", errors.WithMessagef(err, "cannot load environment %q", environment)
	}

	config, exists := environments[environment]
	if !exists || config.URL == "" {
		return "", fmt.Errorf("%s does not contain environment %q", EnvironmentConfigFile, environment)
	}

	return config.URL, nil
}
