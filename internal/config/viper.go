// Package config provides viper-backed configuration helpers for the CLI.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix for labelkit settings.
const EnvPrefix = "LABELKIT"

// Init configures viper to read LABELKIT_* environment variables and an
// optional config file.
func Init(configFile string) error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		return nil
	}
	viper.SetConfigFile(configFile)
	return viper.ReadInConfig()
}

// GetString is a helper to get string values from viper.
// It checks both OS environment variables and viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}
