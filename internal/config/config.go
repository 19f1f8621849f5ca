// Package config loads unverdad settings from the config file, the
// environment and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the file system config files are read from and written to.
var AppFs = afero.NewOsFs()

const (
	appName  = "unverdad"
	fileName = "config"
	fileType = "toml"
)

// Setting keys.
const (
	KeyModsHome           = "mods_home"
	KeyDefaultGameName    = "default_game.name"
	KeyDefaultGameEnabled = "default_game.enabled"
	KeyGames              = "games"
	KeyDatabaseDriver     = "database.driver"
	KeyDatabaseDSN        = "database.dsn"
)

// Paths are the per-user directories unverdad keeps its files in.
type Paths struct {
	DataHome   string
	ConfigHome string
	StateHome  string
}

// DefaultPaths resolves the XDG base directories, falling back to the
// locations under the home directory.
func DefaultPaths() (Paths, error) {
	home, err := homedir.Dir()
	if err != nil {
		return Paths{}, fmt.Errorf("finding home directory: %w", err)
	}
	xdg := func(env string, fallback ...string) string {
		if dir := os.Getenv(env); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(append(append([]string{home}, fallback...), appName)...)
	}
	return Paths{
		DataHome:   xdg("XDG_DATA_HOME", ".local", "share"),
		ConfigHome: xdg("XDG_CONFIG_HOME", ".config"),
		StateHome:  xdg("XDG_STATE_HOME", ".local", "state"),
	}, nil
}

// ConfigFile returns the path of config.toml.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigHome, fileName+"."+fileType)
}

// Database returns the path of the default SQLite database.
func (p Paths) Database() string {
	return filepath.Join(p.DataHome, "db")
}

// LogFile returns the path of the log file.
func (p Paths) LogFile() string {
	return filepath.Join(p.StateHome, "log")
}

// Config holds the resolved settings.
type Config struct {
	ModsHome    string
	DefaultGame DefaultGame
	// Games maps a game key such as "guilty_gear_strive" to its install path.
	Games    map[string]string
	Database Database
	Paths    Paths

	v *viper.Viper
}

// DefaultGame selects the game used when a command names none.
type DefaultGame struct {
	Name    string
	Enabled bool
}

// Database selects the store driver and connection string.
type Database struct {
	Driver string
	DSN    string
}

// Defaults returns the default value of every setting.
func Defaults(paths Paths) map[string]any {
	return map[string]any{
		KeyModsHome:           filepath.Join(paths.DataHome, "mods"),
		KeyDefaultGameName:    "Guilty Gear Strive",
		KeyDefaultGameEnabled: true,
		KeyGames + ".guilty_gear_strive.game_path": "~/.steam/root/steamapps/common/GUILTY GEAR STRIVE/",
		KeyDatabaseDriver:                          "sqlite",
		KeyDatabaseDSN:                             paths.Database(),
	}
}

// Load reads config.toml, .env files and UNVERDAD_ environment variables.
// A missing config file is not an error.
func Load(paths Paths) (*Config, error) {
	if err := loadDotEnv(".env", false); err != nil {
		return nil, err
	}
	if err := loadDotEnv(".env.local", true); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigFile(paths.ConfigFile())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range Defaults(paths) {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", paths.ConfigFile(), err)
		}
	}

	cfg := &Config{
		DefaultGame: DefaultGame{
			Name:    v.GetString(KeyDefaultGameName),
			Enabled: v.GetBool(KeyDefaultGameEnabled),
		},
		Database: Database{
			Driver: v.GetString(KeyDatabaseDriver),
			DSN:    v.GetString(KeyDatabaseDSN),
		},
		Paths: paths,
		Games: make(map[string]string),
		v:     v,
	}

	var err error
	if cfg.ModsHome, err = homedir.Expand(v.GetString(KeyModsHome)); err != nil {
		return nil, fmt.Errorf("expanding %s: %w", KeyModsHome, err)
	}
	if cfg.Database.Driver == "sqlite" {
		if cfg.Database.DSN, err = homedir.Expand(cfg.Database.DSN); err != nil {
			return nil, fmt.Errorf("expanding %s: %w", KeyDatabaseDSN, err)
		}
	}
	for key := range v.GetStringMap(KeyGames) {
		path := v.GetString(KeyGames + "." + key + ".game_path")
		if path == "" {
			continue
		}
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expanding game path for %s: %w", key, err)
		}
		cfg.Games[key] = expanded
	}

	return cfg, nil
}

// loadDotEnv sets variables from name, read through AppFs. Existing
// variables win unless override is set.
func loadDotEnv(name string, override bool) error {
	f, err := AppFs.Open(name)
	if err != nil {
		return nil
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set && !override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns every known setting key in sorted order.
func (c *Config) Keys() []string {
	keys := c.v.AllKeys()
	sort.Strings(keys)
	return keys
}

// Get returns the raw value of key.
func (c *Config) Get(key string) (any, bool) {
	if !c.v.IsSet(key) {
		return nil, false
	}
	return c.v.Get(key), true
}

// WriteDefault writes a config file holding the default settings unless
// one already exists.
func WriteDefault(paths Paths) error {
	if err := AppFs.MkdirAll(paths.ConfigHome, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	v := viper.New()
	v.SetFs(AppFs)
	for key, value := range Defaults(paths) {
		v.Set(key, value)
	}
	if err := v.SafeWriteConfigAs(paths.ConfigFile()); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("writing %s: %w", paths.ConfigFile(), err)
	}
	return nil
}
