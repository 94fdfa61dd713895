package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

func TestHistograms(t *testing.T) {
	m := mat.NewDense(5, 3, []float64{
		-1.2, 0.1, 72,
		-0.4, 0.9, 69,
		0.0, -1.5, 90,
		0.7, 0.3, 47,
		0.9, 0.2, 76,
	})
	names := []string{"num_pipeline__writing_score", "num_pipeline__reading_score", "math_score"}
	path := filepath.Join(t.TempDir(), "plots", "features.png")

	require.NoError(t, Histograms(path, names, m, []int{0, 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestHistogramsErrors(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	path := filepath.Join(t.TempDir(), "out.png")

	var dim *errors.DimensionError
	assert.True(t, errors.As(Histograms(path, []string{"a"}, m, []int{0}), &dim))
	assert.True(t, errors.Is(Histograms(path, []string{"a", "b"}, m, nil), errors.ErrEmptyData))

	var verr *errors.ValidationError
	assert.True(t, errors.As(Histograms(path, []string{"a", "b"}, m, []int{2}), &verr))
	assert.NoFileExists(t, path)
}
