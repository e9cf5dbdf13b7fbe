package store

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved notd configuration.
type Config interface {
	// BasePath is the directory holding the local mirror.
	BasePath() string
	// Downloads is where non-interactive saves land.
	Downloads() string
	// Interactive allows the save-as prompt when a terminal is attached.
	Interactive() bool
}

// LoadConfig reads .notd.yaml from $NOTD_CONFIG_PATH or the working directory,
// with NOTD_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.notd.db")
	v.SetDefault("downloads", "~/Downloads")
	v.SetDefault("interactive", true)
	v.SetConfigName(".notd") // .yaml is implicit
	v.SetEnvPrefix("NOTD")
	v.AutomaticEnv()

	if override := os.Getenv("NOTD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	downloads, err := homedir.Expand(v.GetString("downloads"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:           path,
		DownloadsPath:  downloads,
		AllowDialog:    v.GetBool("interactive"),
		ConfigFileUsed: v.ConfigFileUsed(),
	}, nil
}

// ConfigFile returns the config file viper read, or "" when defaults were used.
func ConfigFile(c Config) string {
	if fc, ok := c.(*fileConfig); ok {
		return fc.ConfigFileUsed
	}
	return ""
}

type fileConfig struct {
	Path           string `json:"path"`
	DownloadsPath  string `json:"downloads"`
	AllowDialog    bool   `json:"interactive"`
	ConfigFileUsed string `json:"-"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Downloads() string {
	return f.DownloadsPath
}

func (f *fileConfig) Interactive() bool {
	return f.AllowDialog
}
