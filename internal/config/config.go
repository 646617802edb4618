package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the client needs at start-up.
type Config struct {
	Port string

	APIBaseURL string
	APITimeout time.Duration // 0 = no client-side timeout

	DBPath   string
	LogLevel string

	NoticeDuration time.Duration

	ConfirmSecret string
	ConfirmTTL    time.Duration
}

const envPrefix = "TASKBOARD"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", "0s")
	v.SetDefault("db.path", "taskboard.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("notice.duration", "3s")
	v.SetDefault("confirm.secret", "")
	v.SetDefault("confirm.ttl", "1m")
}

// New returns a viper instance that reads configs/config.yml (if present)
// and TASKBOARD_* environment variables on top of the defaults.
func New(paths ...string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and decodes it. A missing file is not
// an error; a malformed one is.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:           v.GetString("port"),
		APIBaseURL:     strings.TrimRight(v.GetString("api.base_url"), "/"),
		APITimeout:     v.GetDuration("api.timeout"),
		DBPath:         v.GetString("db.path"),
		LogLevel:       v.GetString("log.level"),
		NoticeDuration: v.GetDuration("notice.duration"),
		ConfirmSecret:  v.GetString("confirm.secret"),
		ConfirmTTL:     v.GetDuration("confirm.ttl"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.APIBaseURL == "":
		return errors.New("config: api.base_url is empty")
	case c.DBPath == "":
		return errors.New("config: db.path is empty")
	case c.NoticeDuration <= 0:
		return fmt.Errorf("config: notice.duration must be positive, got %s", c.NoticeDuration)
	case c.ConfirmTTL <= 0:
		return fmt.Errorf("config: confirm.ttl must be positive, got %s", c.ConfirmTTL)
	case c.APITimeout < 0:
		return fmt.Errorf("config: api.timeout must not be negative, got %s", c.APITimeout)
	}
	return nil
}
