package transformation

import (
	"path/filepath"

	"github.com/YuminosukeSato/scoreprep/dataset"
)

// Default artifact location.
const (
	DefaultArtifactsDir     = "artifacts"
	DefaultPreprocessorFile = "preprocessor.gob"
)

// Config holds the column schema and the location of the stored preprocessor.
type Config struct {
	Schema           dataset.Schema
	ArtifactsDir     string
	PreprocessorFile string
}

// DefaultConfig returns the student performance schema and artifacts/preprocessor.gob.
func DefaultConfig() Config {
	return Config{
		Schema:           dataset.DefaultSchema(),
		ArtifactsDir:     DefaultArtifactsDir,
		PreprocessorFile: DefaultPreprocessorFile,
	}
}

// PreprocessorPath returns the file the fitted preprocessor is written to.
func (c Config) PreprocessorPath() string {
	dir, file := c.ArtifactsDir, c.PreprocessorFile
	if file == "" {
		file = DefaultPreprocessorFile
	}
	return filepath.Join(dir, file)
}
