// Package config loads the YAML description of a preprocessing run.
//
// Values come from, in increasing priority: built-in defaults, the config
// file, PREPKIT_* environment variables and command-line flags. Nested keys
// map to environment variables with dots replaced by underscores, so
// split.test_size is PREPKIT_SPLIT_TEST_SIZE.
package config

import (
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dishcision/prepkit/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PREPKIT"

// Step names accepted in the steps list.
const (
	StepImpute      = "impute"
	StepNormalize   = "normalize"
	StepStandardize = "standardize"
	StepMinMax      = "minmax"
	StepPoly        = "poly"
)

// Config describes one preprocessing run.
type Config struct {
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json zerolog"`

	// Input is the CSV to read; "-" or empty reads standard input.
	Input string `mapstructure:"input"`
	// Output is the CSV to write; "-" or empty writes standard output.
	Output string `mapstructure:"output"`

	// Label names a numeric column that is carried through untouched.
	Label string `mapstructure:"label"`
	// Categorical lists string columns that are one-hot encoded.
	Categorical []string `mapstructure:"categorical" validate:"unique,dive,required"`

	Steps       []Step      `mapstructure:"steps" validate:"dive"`
	Correlation Correlation `mapstructure:"correlation"`
	Split       Split       `mapstructure:"split"`

	// Summary is an optional path for a YAML run summary.
	Summary string `mapstructure:"summary"`
}

// Step is one transformation in the pipeline.
type Step struct {
	Name string `mapstructure:"name" validate:"required,oneof=impute normalize standardize minmax poly"`

	// Strategy is used by impute: mean, median or zero.
	Strategy string `mapstructure:"strategy" validate:"required_if=Name impute,omitempty,oneof=mean median zero"`

	// Range is used by minmax as [low, high]. Defaults to [0, 1].
	Range []float64 `mapstructure:"range" validate:"omitempty,len=2"`

	// Degree is used by poly.
	Degree int `mapstructure:"degree" validate:"required_if=Name poly,gte=0"`
}

// Correlation controls the correlation stage.
type Correlation struct {
	Enabled bool `mapstructure:"enabled"`
	// Heatmap is an optional .png, .svg or .pdf path.
	Heatmap string `mapstructure:"heatmap"`
}

// Split controls the train/test stage.
type Split struct {
	Enabled     bool    `mapstructure:"enabled"`
	TestSize    float64 `mapstructure:"test_size" validate:"gt=0,lt=1"`
	Seed        uint64  `mapstructure:"seed"`
	TrainOutput string  `mapstructure:"train_output" validate:"required_if=Enabled true"`
	TestOutput  string  `mapstructure:"test_output" validate:"required_if=Enabled true"`
}

var validate = validator.New()

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("input", "-")
	v.SetDefault("output", "-")
	v.SetDefault("label", "")
	v.SetDefault("summary", "")
	v.SetDefault("correlation.enabled", false)
	v.SetDefault("correlation.heatmap", "")
	v.SetDefault("split.enabled", false)
	v.SetDefault("split.test_size", 0.2)
	v.SetDefault("split.seed", 0)
	v.SetDefault("split.train_output", "")
	v.SetDefault("split.test_output", "")
	return v
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"input":     "input",
	"output":    "output",
	"log-level": "log_level",
}

// Load reads the config file at path, applies environment overrides and the
// flags in fs that were set, and validates the result. An empty path loads
// defaults only. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}
	return decode(v)
}

// Read parses YAML from r. Environment overrides still apply.
func Read(r io.Reader) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Namespace(), "failed rule "+ruleString(fe), fe.Value())
		}
		return errors.Wrap(err, "validate config")
	}
	for i, s := range c.Steps {
		if s.Name == StepMinMax && len(s.Range) == 2 && s.Range[0] > s.Range[1] {
			return errors.NewValidationError("Config.Steps["+strconv.Itoa(i)+"].Range", "low must not exceed high", s.Range)
		}
	}
	for _, name := range c.Categorical {
		if name == c.Label && name != "" {
			return errors.NewValidationError("Config.Label", "label column cannot also be categorical", name)
		}
	}
	return nil
}

func ruleString(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
