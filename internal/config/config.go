// Package config resolves run settings from flags, environment variables and
// an optional xlcombine.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nconklindev/xlcombine/internal/converter"

	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "XLCOMBINE"
	ConfigName = "xlcombine"

	KeyDir         = "dir"
	KeyOutput      = "output"
	KeyExtension   = "extension"
	KeyOrder       = "order"
	KeyStampDate   = "stamp_date"
	KeyBlankValues = "blank_values"
	KeyProgress    = "progress"
	KeyVerbose     = "verbose"
)

type Config struct {
	Dir         string
	SkipRows    int
	DropColumn  int
	Output      string
	Extension   string
	Order       converter.Order
	StampDate   bool
	BlankValues []string
	Progress    bool
	Verbose     bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyOutput, converter.DefaultOutputName)
	v.SetDefault(KeyExtension, converter.DefaultExtension)
	v.SetDefault(KeyOrder, string(converter.OrderName))
	v.SetDefault(KeyStampDate, false)
	v.SetDefault(KeyBlankValues, []string{})
	v.SetDefault(KeyProgress, false)
	v.SetDefault(KeyVerbose, false)
}

// ReadFile points v at cfgFile, or searches the working directory and
// ~/.config/xlcombine for xlcombine.yaml. A missing search-path file is not
// an error; the path of the file used is returned when one was read.
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load builds a validated Config from v and the two positional arguments.
func Load(v *viper.Viper, skipRows, dropColumn int) (*Config, error) {
	order, err := converter.ParseOrder(v.GetString(KeyOrder))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dir:         v.GetString(KeyDir),
		SkipRows:    skipRows,
		DropColumn:  dropColumn,
		Output:      v.GetString(KeyOutput),
		Extension:   v.GetString(KeyExtension),
		Order:       order,
		StampDate:   v.GetBool(KeyStampDate),
		BlankValues: v.GetStringSlice(KeyBlankValues),
		Progress:    v.GetBool(KeyProgress),
		Verbose:     v.GetBool(KeyVerbose),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SkipRows < 0 {
		return fmt.Errorf("rows to skip must not be negative, got %d", c.SkipRows)
	}
	if c.DropColumn < 0 {
		return fmt.Errorf("column to drop must not be negative, got %d", c.DropColumn)
	}
	if c.Dir == "" {
		return errors.New("directory must not be empty")
	}
	if c.Output == "" || filepath.Base(c.Output) != c.Output {
		return fmt.Errorf("output must be a plain file name, got %q", c.Output)
	}
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	return nil
}

// Options maps the configuration onto a combine run.
func (c *Config) Options() converter.Options {
	return converter.Options{
		Dir:         c.Dir,
		SkipRows:    c.SkipRows,
		DropColumns: []int{c.DropColumn},
		OutputName:  c.Output,
		Extension:   c.Extension,
		Order:       c.Order,
		StampDate:   c.StampDate,
		BlankValues: c.BlankValues,
	}
}
