package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"

	"github.com/autobrr/rocketdeploy/pkg/logger"
	"github.com/autobrr/rocketdeploy/pkg/stringutils"
)

const (
	EnvPrefix = "ROCKETDEPLOY__"

	defaultApplication = "Project"
)

type DeployConfig struct {
	User   string            `yaml:"user" koanf:"user"`
	Branch string            `yaml:"branch" koanf:"branch"`
	Target string            `yaml:"target" koanf:"target"`
	Vars   map[string]string `yaml:"vars" koanf:"vars"`
}

type Configuration struct {
	Application string           `yaml:"application" koanf:"application"`
	Deploy      DeployConfig     `yaml:"deploy" koanf:"deploy"`
	RocketChat  RocketChatConfig `yaml:"rocketchat" koanf:"rocketchat"`
	Hooks       HooksConfig      `yaml:"hooks" koanf:"hooks"`
}

/* Vars */

var (
	cfgPath = ""
	envPath = ""

	Delimiter = "."
	Config    *Configuration
	K         = koanf.New(Delimiter)

	// Internal
	log = logger.GetLogger("cfg")
)

/* Public */

// Init loads defaults, the optional .env file, the config file (when set) and
// ROCKETDEPLOY__ environment variables into K, then builds Config from it.
func Init(configFilePath string, envFilePath string) error {
	// set package variables
	cfgPath = configFilePath
	envPath = envFilePath

	k, err := newRegistry(configFilePath, envFilePath)
	if err != nil {
		return err
	}

	cfg, err := Load(k)
	if err != nil {
		return err
	}

	K = k
	Config = cfg
	return nil
}

// Load builds a Configuration from the given registry, resolving computed
// defaults and validating the result. Nothing is cached: every call reflects
// the registry's current contents.
func Load(k *koanf.Koanf) (*Configuration, error) {
	cfg := new(Configuration)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}

	cfg.finalize()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate")
	}

	log.Tracef("Parsed RocketChat config: %+v", cfg.RocketChat.Redacted())
	return cfg, nil
}

// Current reloads the typed configuration from K.
func Current() (*Configuration, error) {
	return Load(K)
}

// Get returns the raw registry value for key, or def when the key is not set.
func Get(key string, def any) any {
	if !K.Exists(key) {
		return def
	}
	return K.Get(key)
}

// Set overrides key in the registry. The change is visible to the next Load.
func Set(key string, value any) error {
	if err := K.Load(confmap.Provider(map[string]interface{}{key: value}, Delimiter), nil); err != nil {
		return errors.Wrapf(err, "set %s", key)
	}
	return nil
}

func ShowUsing() {
	log.Infof("Using %s = %q", stringutils.LeftJust("CONFIG", " ", 10), cfgPath)
	if envPath != "" {
		log.Infof("Using %s = %q", stringutils.LeftJust("ENV", " ", 10), envPath)
	}
}

/* Private */

func newRegistry(configFilePath string, envFilePath string) (*koanf.Koanf, error) {
	k := koanf.New(Delimiter)

	// load defaults
	if err := k.Load(confmap.Provider(Defaults(), Delimiter), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// load config
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load file: %w", err)
		}
	}

	// load .env into the process environment, real environment wins
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	// load environment variables
	if err := k.Load(env.Provider(EnvPrefix, Delimiter, EnvKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	return k, nil
}

// EnvKey maps ROCKETDEPLOY__ROCKETCHAT__SUCCESS_COLOR to rocketchat.success_color.
func EnvKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", Delimiter)
}

func (c *Configuration) finalize() {
	c.Application = strings.TrimSpace(c.Application)
	c.RocketChat.Title = stringutils.FirstNonEmpty(c.RocketChat.Title, c.Application, defaultApplication)
	if c.Deploy.Vars == nil {
		c.Deploy.Vars = map[string]string{}
	}
	if c.Hooks.Empty() {
		c.Hooks = DefaultHooks()
	}
}

func (c *Configuration) Validate() error {
	if err := c.RocketChat.Validate(); err != nil {
		return errors.Wrap(err, "rocketchat")
	}
	if err := c.Hooks.Validate(); err != nil {
		return errors.Wrap(err, "hooks")
	}
	return nil
}
