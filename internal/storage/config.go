package storage

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the on-disk base path for the key-value store.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the store path from a .picstash config file or the
// PICSTASH_PATH environment variable, defaulting to ~/.picstash.db.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.picstash.db")
	v.SetConfigName(".picstash") // .yaml is implicit
	v.SetEnvPrefix("PICSTASH")
	v.AutomaticEnv()
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("error expanding store path: %w", err)
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// PathConfig wraps an explicit base path, bypassing config discovery.
type PathConfig string

func (p PathConfig) BasePath() string { return string(p) }
