package circarr

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"xorkevin.dev/kerrors"
)

type (
	// Config is the circ configuration
	Config struct {
		Logger ConfigLogger `mapstructure:"logger"`
		Format string       `mapstructure:"format"`
		Items  []string     `mapstructure:"items"`
		Script string       `mapstructure:"script"`
	}

	// ConfigLogger is the logger configuration
	ConfigLogger struct {
		Level  string `mapstructure:"level"`
		Output string `mapstructure:"output"`
	}

	// Flags are flags that override the config
	Flags struct {
		ConfigFile string
	}

	settings struct {
		v            *viper.Viper
		configReader io.Reader
		logWriter    io.Writer
		config       Config
	}
)

func newSettings(opts Opts) *settings {
	v := viper.New()
	v.SetDefault("logger.level", "INFO")
	v.SetDefault("logger.output", "STDERR")
	v.SetDefault("format", formatText)
	v.SetDefault("items", []string{})
	v.SetDefault("script", "")

	v.SetConfigName(opts.DefaultFile)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if cfgdir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(cfgdir, opts.Appname))
	}

	v.SetEnvPrefix(opts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &settings{
		v:            v,
		configReader: opts.ConfigReader,
		logWriter:    opts.LogWriter,
	}
}

func (s *settings) init(flags Flags) error {
	if file := flags.ConfigFile; file != "" {
		s.v.SetConfigFile(file)
	}
	if s.configReader != nil {
		if err := s.v.ReadConfig(s.configReader); err != nil {
			return kerrors.WithKind(err, ErrInvalidConfig, "Failed to read in config")
		}
	} else {
		if err := s.v.ReadInConfig(); err != nil {
			var nferr viper.ConfigFileNotFoundError
			if !errors.As(err, &nferr) {
				return kerrors.WithKind(err, ErrInvalidConfig, "Failed to read in config")
			}
		}
	}

	if err := s.v.Unmarshal(&s.config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return kerrors.WithKind(err, ErrInvalidConfig, "Failed to decode config")
	}
	if _, err := parseFormat(s.config.Format); err != nil {
		return kerrors.WithKind(err, ErrInvalidConfig, "Invalid output format")
	}
	return nil
}

func (s *settings) logger() configLogger {
	return configLogger{
		level:  s.config.Logger.Level,
		output: s.config.Logger.Output,
		writer: s.logWriter,
	}
}
