package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config carries the runtime settings for the catalog service.
type Config struct {
	DSN           string
	Addr          string
	MediaDir      string
	SpotifyID     string
	SpotifySecret string
}

// Load reads config.yaml (working dir or ./configs) and CATALOG_* env
// overrides, with defaults suitable for local development.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db.dsn", "root:root@tcp(localhost:3306)/musiccatalog?charset=utf8mb4&parseTime=True&loc=Local")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("media.dir", "media")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		DSN:           viper.GetString("db.dsn"),
		Addr:          viper.GetString("server.addr"),
		MediaDir:      viper.GetString("media.dir"),
		SpotifyID:     viper.GetString("spotify.client_id"),
		SpotifySecret: viper.GetString("spotify.client_secret"),
	}, nil
}
