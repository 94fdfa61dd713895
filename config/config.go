// Package config loads scoreprep settings from an optional config file and SCOREPREP_*
// environment variables.
//
// Example TOML file:
//
//	[schema]
//	numerical = ["writing_score", "reading_score"]
//	categorical = ["gender", "race_ethnicity", "parental_level_of_education", "lunch", "test_preparation_course"]
//	target = "math_score"
//
//	[artifacts]
//	dir = "artifacts"
//	preprocessor_file = "preprocessor.gob"
//
//	[log]
//	level = "info"
//	path = "logs/scoreprep.log"
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/scoreprep/dataset"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
	"github.com/YuminosukeSato/scoreprep/pkg/log"
	"github.com/YuminosukeSato/scoreprep/transformation"
)

// EnvPrefix is the prefix of environment variables, e.g. SCOREPREP_LOG_LEVEL.
const EnvPrefix = "SCOREPREP"

// Config is the root configuration.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Schema    dataset.Schema  `mapstructure:"schema"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Log       LogConfig       `mapstructure:"log"`
}

// DataConfig holds the default dataset locations used when no path is given on the
// command line.
type DataConfig struct {
	TrainPath string `mapstructure:"train_path"`
	TestPath  string `mapstructure:"test_path"`
}

// ArtifactsConfig is the location of the stored preprocessor.
type ArtifactsConfig struct {
	Dir              string `mapstructure:"dir" validate:"required"`
	PreprocessorFile string `mapstructure:"preprocessor_file" validate:"required"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Console    bool   `mapstructure:"console"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// SetDefaults registers the default values on v. Keys without a default are not read from
// the environment by Unmarshal, so every key has one.
func SetDefaults(v *viper.Viper) {
	schema := dataset.DefaultSchema()
	v.SetDefault("data.train_path", "")
	v.SetDefault("data.test_path", "")
	v.SetDefault("schema.numerical", schema.Numerical)
	v.SetDefault("schema.categorical", schema.Categorical)
	v.SetDefault("schema.target", schema.Target)
	v.SetDefault("artifacts.dir", transformation.DefaultArtifactsDir)
	v.SetDefault("artifacts.preprocessor_file", transformation.DefaultPreprocessorFile)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", false)
	v.SetDefault("log.path", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_age", 0)
	v.SetDefault("log.max_backups", 0)
}

// Load reads the config file at path (if not empty) into v, applies environment overrides
// and validates the result. Values already bound to v, e.g. command line flags, take
// precedence over both.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "failed to read config file %s", path), errors.ErrDataLoad)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to decode config"), errors.ErrSchema)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads a Config from path and the environment.
func LoadConfig(path string) (*Config, error) {
	return Load(viper.New(), path)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the schema descriptor. Errors are marked
// errors.ErrSchema.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.Mark(errors.NewValidationError(fe.Namespace(), "failed on the '"+fe.Tag()+"' rule", fe.Value()), errors.ErrSchema)
		}
		return errors.Mark(errors.WithStack(err), errors.ErrSchema)
	}
	return c.Schema.Validate()
}

// Transformation returns the settings of the transformation component.
func (c *Config) Transformation() transformation.Config {
	return transformation.Config{
		Schema:           c.Schema,
		ArtifactsDir:     c.Artifacts.Dir,
		PreprocessorFile: c.Artifacts.PreprocessorFile,
	}
}

// Logging returns the settings of the log provider.
func (c *Config) Logging() log.Config {
	return log.Config{
		Level:   c.Log.Level,
		Console: c.Log.Console,
		File: log.FileConfig{
			Path:       c.Log.Path,
			MaxSize:    c.Log.MaxSize,
			MaxAge:     c.Log.MaxAge,
			MaxBackups: c.Log.MaxBackups,
		},
	}
}
