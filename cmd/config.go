package cmd

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/viper"

	"github.com/apdavison/hbp-validation-client/internal/client"
	"github.com/apdavison/hbp-validation-client/internal/utils"
)

// Config represents the configuration for the command
type Config struct {
	UUID        string
	Alias       string
	Url         string
	Username    string
	Password    string
	Environment string
}

// Print the Config, omits the password
func (c Config) Print() {
	fmt.Printf("UUID: %v\n", c.UUID)
	fmt.Printf("Alias: %v\n", c.Alias)
	fmt.Printf("Url: %v\n", c.Url)
	fmt.Printf("Username: %v\n", c.Username)
	fmt.Printf("Environment: %v\n", c.Environment)
}

// Validate the Config making sure all required fields are present and valid
func (c Config) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}

	if c.Password == "" {
		return errors.New("password is required")
	}

	if c.Url == "" {
		return errors.New("url is required")
	}

	if c.UUID != "" && !utils.IsValidUUID(c.UUID) {
		return fmt.Errorf("could not parse UUID: %s", c.UUID)
	}

	_, err := url.Parse(c.Url)
	if err != nil {
		return fmt.Errorf("could not parse URL: %w", err)
	}

	return nil
}

// LoadConfigFromCLI loads the Config from the CLI flags
//
// `uuidKey` and `aliasKey` are the names of the viper keys that hold the
// record UUID and alias. They differ per command; an empty key loads nothing.
func LoadConfigFromCLI(uuidKey, aliasKey string) Config {
	urlString, _ := resolveRegistryURL()

	return Config{
		UUID:        viper.GetString(uuidKey),
		Alias:       viper.GetString(aliasKey),
		Url:         urlString,
		Username:    viper.GetString("user"),
		Password:    viper.GetString("pass"),
		Environment: viper.GetString("env"),
	}
}

// resolveRegistryURL returns the --url flag when set, otherwise the base URL
// of the selected environment.
func resolveRegistryURL() (string, error) {
	if urlString := viper.GetString("url"); urlString != "" {
		return urlString, nil
	}
	return client.ResolveEnvironment(viper.GetString("env"))
}
