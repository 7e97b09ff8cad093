package config

import (
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ErrNoConfigFile is returned by Watch when there is no file to watch.
var ErrNoConfigFile = errors.New("no config file to watch")

// Watch re-reads the config file whenever it changes on disk and passes the
// new value to onChange. Invalid edits are logged and skipped so the last good
// config stays in effect.
func Watch(path string, onChange func(*Config), log zerolog.Logger) error {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return ErrNoConfigFile
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("ignoring invalid config change")
			return
		}
		log.Info().Str("file", e.Name).Str("bot_status", cfg.Bot.Status).Msg("config reloaded")
		onChange(cfg)
	})
	v.WatchConfig()

	return nil
}
