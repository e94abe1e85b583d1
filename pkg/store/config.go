package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const DefaultPath = "~/.tiles.db"

type Config interface {
	BasePath() string
	// ShellDir is the desktop host control directory, empty when the
	// program is not running under a host shell.
	ShellDir() string
}

// LoadConfig reads the optional .tiles config file from $TILES_CONFIG_PATH
// or the working directory. Every key can be overridden from the
// environment with the TILES_ prefix (TILES_PATH, TILES_SHELL_DIR).
func LoadConfig() (Config, error) {
	viper.SetDefault("path", DefaultPath)
	viper.SetDefault("shell_dir", "")
	viper.SetConfigName(".tiles") // .yaml is implicit
	viper.SetEnvPrefix("TILES")
	viper.AutomaticEnv()

	if override := os.Getenv("TILES_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	shellDir, err := homedir.Expand(viper.GetString("shell_dir"))
	if err != nil {
		return nil, fmt.Errorf("store: expand shell_dir: %w", err)
	}
	return &fileConfig{Path: path, Shell: shellDir}, nil
}

// NewConfig returns a fixed config, for tests and embedding.
func NewConfig(path, shellDir string) Config {
	return &fileConfig{Path: path, Shell: shellDir}
}

type fileConfig struct {
	Path  string `json:"path"`
	Shell string `json:"shellDir,omitempty"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) ShellDir() string {
	return f.Shell
}
