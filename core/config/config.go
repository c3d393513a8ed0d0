package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ssh-to-terminal/core/database"
	"ssh-to-terminal/core/logger"
	"ssh-to-terminal/core/sshconfig"
	"ssh-to-terminal/core/storage"
	"ssh-to-terminal/core/terminal"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional configuration file looked up next to .env.
const FileName = "ssh-to-terminal"

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// SSH holds configuration for SSH config discovery.
	SSH sshconfig.Config `mapstructure:"ssh"`
	// Terminal holds configuration for the settings file.
	Terminal terminal.Config `mapstructure:"terminal"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Journal holds configuration for the run journal database.
	Journal database.Config `mapstructure:"journal"`
	// Backup holds configuration for settings backups (e.g., S3, Minio).
	Backup storage.Config `mapstructure:"backup"`
}

// LoadConfig loads configuration from environment variables, a .env file and
// an optional ssh-to-terminal.yaml in path.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SSH_DIR -> ssh.dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
