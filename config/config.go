package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/FACorreiaa/green-city-pages/internal/types"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Dataset struct {
		Path      string              `mapstructure:"path"`
		Overrides types.CityOverrides `mapstructure:"overrides"`
	} `mapstructure:"dataset"`
	Export struct {
		OutDir      string `mapstructure:"outDir"`
		Concurrency int    `mapstructure:"concurrency"`
	} `mapstructure:"export"`
	Tracing struct {
		ServiceName string `mapstructure:"serviceName"`
	} `mapstructure:"tracing"`
}

// flagBindings maps config keys to the command line flags that may override them.
var flagBindings = map[string]string{
	"server.HTTPPort":    "port",
	"dataset.path":       "dataset",
	"export.outDir":      "out",
	"export.concurrency": "concurrency",
}

// InitConfig loads configuration from configFile when set, otherwise from the
// usual search paths, falling back to the embedded config.yml.
// Flags present in flags override the matching keys.
func InitConfig(configFile string, flags *pflag.FlagSet) (Config, error) {
	var config Config
	v := viper.New()

	v.SetDefault("mode", "development")
	v.SetDefault("server.HTTPPort", "8000")
	v.SetDefault("server.HTTPTimeout", 60*time.Second)
	v.SetDefault("dataset.path", "public/city_data.csv")
	v.SetDefault("export.outDir", "out")
	v.SetDefault("export.concurrency", 4)
	v.SetDefault("tracing.serviceName", "green-city-pages")

	v.SetEnvPrefix("GREENCITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.AddConfigPath("/app/config")
		v.SetConfigName("config")
		v.SetConfigType("yml")

		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
			if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
				return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Dataset.Overrides == nil {
		config.Dataset.Overrides = types.CityOverrides{}
	}
	return config, nil
}
