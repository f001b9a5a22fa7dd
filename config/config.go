// Package config loads the service configuration from the environment.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/securecookie"
	log "github.com/sirupsen/logrus"

	"timeline/model"
)

// Backends lists the accepted TIMELINE_BACKEND values.
var Backends = []string{"memory", "file", "bolt", "sqlite", "dynamodb"}

// Config holds every setting of the timeline service.
type Config struct {
	HTTPAddr string `env:"TIMELINE_HTTP_ADDR" envDefault:":8080"`

	Backend  string `env:"TIMELINE_BACKEND" envDefault:"file"`
	SlotKey  string `env:"TIMELINE_SLOT_KEY" envDefault:"x_like_posts"`
	DataPath string `env:"TIMELINE_DATA_PATH"`

	DynamoTable    string `env:"TIMELINE_DYNAMO_TABLE" envDefault:"timeline"`
	DynamoRegion   string `env:"TIMELINE_DYNAMO_REGION" envDefault:"us-west-2"`
	DynamoEndpoint string `env:"TIMELINE_DYNAMO_ENDPOINT"`
	AWSProfile     string `env:"AWS_PROFILE"`

	// Base64 encoded cookie keys. Random keys are generated when unset.
	SessionHashKey  string `env:"TIMELINE_SESSION_HASH_KEY"`
	SessionBlockKey string `env:"TIMELINE_SESSION_BLOCK_KEY"`

	UserName   string `env:"TIMELINE_USER_NAME"`
	UserHandle string `env:"TIMELINE_USER_HANDLE"`
	UserAvatar string `env:"TIMELINE_USER_AVATAR"`

	LogLevel       string        `env:"TIMELINE_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"TIMELINE_LOG_FORMAT" envDefault:"text"`
	RequestTimeout time.Duration `env:"TIMELINE_REQUEST_TIMEOUT" envDefault:"2s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	valid := false
	for _, b := range Backends {
		if c.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown backend %q, want one of %s", c.Backend, strings.Join(Backends, ", "))
	}
	if strings.TrimSpace(c.SlotKey) == "" {
		return fmt.Errorf("slot key is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// Author returns the local user identity, falling back to the default for
// unset fields.
func (c Config) Author() model.Author {
	a := model.DefaultAuthor
	if c.UserName != "" {
		a.Name = c.UserName
	}
	if c.UserHandle != "" {
		a.Handle = c.UserHandle
		if !strings.HasPrefix(a.Handle, "@") {
			a.Handle = "@" + a.Handle
		}
	}
	if c.UserAvatar != "" {
		a.Avatar = c.UserAvatar
	}
	return a
}

// SessionKeys decodes the cookie keys. Missing keys are generated, which
// means notices do not survive a restart.
func (c Config) SessionKeys() (hashKey, blockKey []byte, err error) {
	hashKey, err = decodeKey("TIMELINE_SESSION_HASH_KEY", c.SessionHashKey, 64)
	if err != nil {
		return nil, nil, err
	}
	blockKey, err = decodeKey("TIMELINE_SESSION_BLOCK_KEY", c.SessionBlockKey, 32)
	if err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func decodeKey(name, value string, size int) ([]byte, error) {
	if value == "" {
		log.Warnf("%s not set, generating a random key", name)
		return securecookie.GenerateRandomKey(size), nil
	}
	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return key, nil
}

// ConfigureLogging applies level and format to the standard logrus logger.
func (c Config) ConfigureLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	switch c.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
