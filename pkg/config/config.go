package config

import (
	"io/fs"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/transmission-cleanup/pkg/stringutils"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrConfigInvalid  = errors.New("invalid configuration")
)

const (
	Delimiter = "."

	defaultRPCPath = "/transmission/rpc"
	defaultTimeout = 30 * time.Second
)

// environment variables that may override the configuration file
var envKeys = map[string]string{
	"TRANSMISSION_ADDRESS":       "address",
	"TRANSMISSION_PORT":          "port",
	"TRANSMISSION_USERNAME":      "username",
	"TRANSMISSION_PASSWORD":      "password",
	"TRANSMISSION_INCOMPLETEDIR": "incomplete_dir",
	"TRANSMISSION_TORRENTSDIR":   "torrents_dir",
}

type Configuration struct {
	Address  string        `koanf:"address"`
	Port     int           `koanf:"port"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
	RPCPath  string        `koanf:"rpc_path"`
	HTTPS    bool          `koanf:"https"`
	Timeout  time.Duration `koanf:"timeout"`

	IncompleteDir string `koanf:"incomplete_dir"`
	TorrentsDir   string `koanf:"torrents_dir"`

	// DeleteData controls whether remove-finished also removes downloaded data.
	DeleteData bool `koanf:"delete_data"`

	Filter        FilterConfiguration `koanf:"filter"`
	Notifications NotificationsConfig `koanf:"notifications"`

	path string
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "transmission_cleanup", "config.json")
	}

	return filepath.Join(home, ".config", "transmission_cleanup", "config.json")
}

// Load reads the configuration file at configFilePath, applies environment overrides and validates the result.
func Load(configFilePath string) (*Configuration, error) {
	if _, err := os.Stat(configFilePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", configFilePath)
		}

		return nil, errors.Wrapf(ErrConfigNotFound, "stat %s: %v", configFilePath, err)
	}

	k := koanf.New(Delimiter)

	// defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"rpc_path": defaultRPCPath,
		"timeout":  defaultTimeout.String(),
	}, Delimiter), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	// load config
	if err := k.Load(file.Provider(configFilePath), json.Parser()); err != nil {
		return nil, errors.Wrapf(ErrConfigInvalid, "load file: %v", err)
	}

	// load environment variables
	if err := k.Load(env.Provider("TRANSMISSION_", Delimiter, func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, errors.Wrapf(ErrConfigInvalid, "load env: %v", err)
	}

	// unmarshal config
	cfg := new(Configuration)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrapf(ErrConfigInvalid, "unmarshal: %v", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.path = configFilePath
	return cfg, nil
}

func (c *Configuration) validate() error {
	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		return errors.Wrap(ErrConfigInvalid, "address must be set")
	}

	if c.Port < 1 || c.Port > 65535 {
		return errors.Wrapf(ErrConfigInvalid, "port %d out of range (1-65535)", c.Port)
	}

	if c.IncompleteDir == "" {
		return errors.Wrap(ErrConfigInvalid, "incomplete_dir must be set")
	}
	c.IncompleteDir = filepath.Clean(c.IncompleteDir)

	if c.TorrentsDir != "" {
		c.TorrentsDir = filepath.Clean(c.TorrentsDir)
	}

	if !strings.HasPrefix(c.RPCPath, "/") {
		return errors.Wrapf(ErrConfigInvalid, "rpc_path %q must start with /", c.RPCPath)
	}

	if c.Timeout <= 0 {
		return errors.Wrapf(ErrConfigInvalid, "timeout %v must be positive", c.Timeout)
	}

	return nil
}

// RPCURL returns the endpoint of the Transmission RPC interface.
func (c *Configuration) RPCURL() string {
	scheme := "http"
	if c.HTTPS {
		scheme = "https"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Address, strconv.Itoa(c.Port)),
		Path:   c.RPCPath,
	}

	return u.String()
}

func (c *Configuration) ShowUsing(log *logrus.Entry) {
	log.Infof("Using %s = %q", stringutils.LeftJust("CONFIG", " ", 10), c.path)
	log.Infof("Using %s = %s", stringutils.LeftJust("RPC", " ", 10), c.RPCURL())
}
