package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scoreprep/dataset"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, dataset.DefaultSchema(), cfg.Schema)
	assert.Equal(t, "artifacts", cfg.Artifacts.Dir)
	assert.Equal(t, "preprocessor.gob", cfg.Artifacts.PreprocessorFile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join("artifacts", "preprocessor.gob"), cfg.Transformation().PreprocessorPath())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "scoreprep.toml", `
[schema]
numerical = ["reading_score"]
categorical = ["gender", "lunch"]
target = "math_score"

[artifacts]
dir = "/tmp/models"

[log]
level = "debug"
path = "logs/scoreprep.log"
max_size = 10
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"reading_score"}, cfg.Schema.Numerical)
	assert.Equal(t, []string{"gender", "lunch"}, cfg.Schema.Categorical)
	assert.Equal(t, "/tmp/models", cfg.Artifacts.Dir)
	assert.Equal(t, "preprocessor.gob", cfg.Artifacts.PreprocessorFile)

	logging := cfg.Logging()
	assert.Equal(t, "debug", logging.Level)
	assert.Equal(t, "logs/scoreprep.log", logging.File.Path)
	assert.Equal(t, 10, logging.File.MaxSize)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SCOREPREP_LOG_LEVEL", "warn")
	t.Setenv("SCOREPREP_ARTIFACTS_DIR", "/srv/artifacts")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/srv/artifacts", cfg.Artifacts.Dir)
}

func TestLoadBoundValueWins(t *testing.T) {
	t.Setenv("SCOREPREP_LOG_LEVEL", "warn")

	v := viper.New()
	v.Set("log.level", "error")
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, errors.KindDataLoad, errors.KindOf(err))

	badLevel := writeFile(t, "level.toml", "[log]\nlevel = \"loud\"\n")
	_, err = LoadConfig(badLevel)
	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))
	assert.Contains(t, err.Error(), "oneof")

	overlap := writeFile(t, "overlap.yaml", "schema:\n  numerical: [math_score]\n")
	_, err = LoadConfig(overlap)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))

	emptyDir := writeFile(t, "dir.json", `{"artifacts": {"dir": ""}}`)
	_, err = LoadConfig(emptyDir)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))
}
