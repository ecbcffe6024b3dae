package main

import (
	"fmt"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/meigma/sau"
)

const (
	keyMaxTotalSize = "max_total_size"
	keyMaxFiles     = "max_files"
	keyLogLevel     = "log_level"

	flagMaxSize  = "max-size"
	flagMaxFiles = "max-files"
)

// config is the resolved CLI configuration.
type config struct {
	// MaxTotalSize caps container size in bytes; 0 disables the limit.
	MaxTotalSize uint64
	// MaxFiles caps the number of merge inputs; negative means unlimited.
	MaxFiles int
	LogLevel charmlog.Level
}

// loadConfig resolves configuration from defaults, the optional config file
// at path and any flags that were set explicitly, in increasing precedence.
// Environment variables are not consulted.
func loadConfig(path string, flags *pflag.FlagSet) (*config, error) {
	v := viper.New()
	v.SetDefault(keyMaxTotalSize, humanize.IBytes(sau.DefaultMaxTotalSize))
	v.SetDefault(keyMaxFiles, sau.DefaultMaxFiles)
	v.SetDefault(keyLogLevel, charmlog.InfoLevel.String())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{keyMaxTotalSize: flagMaxSize, keyMaxFiles: flagMaxFiles} {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	maxSize, err := humanize.ParseBytes(strings.TrimSpace(v.GetString(keyMaxTotalSize)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", keyMaxTotalSize, v.GetString(keyMaxTotalSize), err)
	}
	level, err := charmlog.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}

	return &config{
		MaxTotalSize: maxSize,
		MaxFiles:     v.GetInt(keyMaxFiles),
		LogLevel:     level,
	}, nil
}
