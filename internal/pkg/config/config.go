package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultFileName is the config file expected beside the program.
const DefaultFileName = "config.json"

// ErrFirstRun is reported when a missing config file was just created with
// skeleton defaults. The operator is expected to edit the file and run again.
var ErrFirstRun = errors.New("config file created with defaults, edit it before running again")

type Config struct {
	Recollect     Recollect     `json:"recollect"`
	Notifications Notifications `json:"notifications"`
}

type Recollect struct {
	PlaceID   string `json:"place_id"`
	ServiceID string `json:"service_id"`
}

type Notifications struct {
	Pushover Pushover `json:"pushover"`
	Ntfy     Ntfy     `json:"ntfy"`
	Telegram Telegram `json:"telegram"`
	SNS      SNS      `json:"sns"`
}

type Pushover struct {
	Enabled  bool   `json:"enabled"`
	UserKey  string `json:"user_key"`
	APIToken string `json:"api_token"`
}

type Ntfy struct {
	Enabled bool   `json:"enabled"`
	Topic   string `json:"topic"`
}

type Telegram struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

type SNS struct {
	Enabled  bool   `json:"enabled"`
	TopicARN string `json:"topic_arn"`
}

// Default returns the skeleton written on first run: empty ids, every
// notification backend disabled.
func Default() *Config {
	return &Config{}
}

// Load reads and validates the config file at path. A missing file is
// populated with the default skeleton and reported as ErrFirstRun so the
// caller can direct the operator to edit it.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := write(path, Default()); err != nil {
			return nil, fmt.Errorf("error creating default config file %s: %w", path, err)
		}

		return nil, fmt.Errorf("created %s: %w", path, ErrFirstRun)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg := &Config{}

	err = json.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the ReCollect ids are present, that at least one
// notification backend is enabled, and that every enabled backend carries its
// required credentials.
func (c *Config) Validate() error {
	if c.Recollect.PlaceID == "" {
		return errors.New("recollect.place_id is empty, run with -extract-ids or see -config-help")
	}

	if c.Recollect.ServiceID == "" {
		return errors.New("recollect.service_id is empty, run with -extract-ids or see -config-help")
	}

	n := c.Notifications

	if !n.Pushover.Enabled && !n.Ntfy.Enabled && !n.Telegram.Enabled && !n.SNS.Enabled {
		return errors.New("no notification backend is enabled, enable at least one under notifications")
	}

	if n.Pushover.Enabled {
		if n.Pushover.UserKey == "" {
			return errors.New("pushover is enabled but notifications.pushover.user_key is empty")
		}

		if n.Pushover.APIToken == "" {
			return errors.New("pushover is enabled but notifications.pushover.api_token is empty")
		}
	}

	if n.Ntfy.Enabled && n.Ntfy.Topic == "" {
		return errors.New("ntfy is enabled but notifications.ntfy.topic is empty")
	}

	if n.Telegram.Enabled {
		if n.Telegram.BotToken == "" {
			return errors.New("telegram is enabled but notifications.telegram.bot_token is empty")
		}

		if n.Telegram.ChatID == 0 {
			return errors.New("telegram is enabled but notifications.telegram.chat_id is empty")
		}
	}

	if n.SNS.Enabled && n.SNS.TopicARN == "" {
		return errors.New("sns is enabled but notifications.sns.topic_arn is empty")
	}

	return nil
}

// SaveRecollect merges the given ids into the config file at path, preserving
// every other field. The file is created with skeleton defaults if absent.
func SaveRecollect(path, placeID, serviceID string) error {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// keep the skeleton
	default:
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg.Recollect = Recollect{PlaceID: placeID, ServiceID: serviceID}

	return write(path, cfg)
}

// write rewrites the file through a temp file and rename, enough atomicity
// for a single-user local file.
func write(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}

	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", tmp, err)
	}

	return os.Rename(tmp, path)
}
