package dataset_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scoreprep/dataset"
	"github.com/YuminosukeSato/scoreprep/pkg/errors"
)

const studentsCSV = "\ufeffgender,race_ethnicity,parental_level_of_education,lunch,test_preparation_course,math_score,reading_score,writing_score\n" +
	"female,group B,bachelor's degree,standard,none,72,72,74\n" +
	"female,group C,some college,standard,completed,69,90,88\n" +
	"male,group A,,free/reduced,none,47,NA,44\n"

func TestParseCSV(t *testing.T) {
	frame, err := dataset.ParseCSV(strings.NewReader(studentsCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, frame.Len())
	assert.Equal(t, "gender", frame.Columns()[0], "byte order mark is stripped")
	assert.True(t, frame.Has("math_score"))

	scores, err := frame.Float64s("reading_score")
	require.NoError(t, err)
	assert.Equal(t, 72.0, scores[0])
	assert.True(t, math.IsNaN(scores[2]))

	education, err := frame.Strings("parental_level_of_education")
	require.NoError(t, err)
	assert.Equal(t, []string{"bachelor's degree", "some college", ""}, education)
}

func TestParseCSVErrors(t *testing.T) {
	_, err := dataset.ParseCSV(strings.NewReader(""))
	assert.True(t, errors.Is(err, errors.ErrDataLoad))

	_, err = dataset.ParseCSV(strings.NewReader("a,b\n\"unterminated,1\n"))
	assert.True(t, errors.Is(err, errors.ErrDataLoad))

	_, err = dataset.ParseCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(studentsCSV), 0o644))

	frame, err := dataset.ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 8, len(frame.Columns()))

	_, err = dataset.ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.KindDataLoad, errors.KindOf(err))
}

func TestNewFrameValidation(t *testing.T) {
	_, err := dataset.NewFrame([]string{"a", "a"}, nil)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))

	_, err = dataset.NewFrame([]string{"a", "b"}, [][]string{{"1"}})
	var dim *errors.DimensionError
	assert.True(t, errors.As(err, &dim))
}

func TestFrameAccessors(t *testing.T) {
	frame, err := dataset.NewFrame(
		[]string{"x", "y", "z"},
		[][]string{{"1", "a", "p"}, {"", "b", "q"}, {"3", "None", "r"}},
	)
	require.NoError(t, err)

	_, err = frame.Float64s("y")
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))
	_, err = frame.Strings("w")
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))

	dropped, err := frame.Drop("z")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, dropped.Columns())
	_, err = frame.Drop("w")
	assert.Error(t, err)

	selected, err := frame.Select("y", "x")
	require.NoError(t, err)
	table, err := selected.StringTable([]string{"y", "x"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "1"}, {"b", ""}, {"", "3"}}, table)

	X, err := frame.Matrix([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, X.At(0, 0))
	assert.True(t, math.IsNaN(X.At(1, 0)))

	_, err = frame.Matrix(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestIsMissing(t *testing.T) {
	for _, cell := range []string{"", " ", "NA", "NaN", "null", "None", "#N/A", "#N/A N/A", "1.#QNAN", "-1.#IND", "1.#IND", "-1.#QNAN"} {
		assert.True(t, dataset.IsMissing(cell), cell)
	}
	for _, cell := range []string{"0", "none", "group A"} {
		assert.False(t, dataset.IsMissing(cell), cell)
	}

	frame, err := dataset.NewFrame([]string{"x"}, [][]string{{"1.#QNAN"}, {"-1.#IND"}, {"2"}})
	require.NoError(t, err)
	values, err := frame.Float64s("x")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(values[0]))
	assert.True(t, math.IsNaN(values[1]))
	assert.Equal(t, 2.0, values[2])
}

func TestEncodeMatrixCSV(t *testing.T) {
	var buf bytes.Buffer
	m := mat.NewDense(2, 2, []float64{0.5, -1, 2, 72})
	require.NoError(t, dataset.EncodeMatrixCSV(&buf, []string{"f0", "math_score"}, m))
	assert.Equal(t, "f0,math_score\n0.5,-1\n2,72\n", buf.String())

	assert.Error(t, dataset.EncodeMatrixCSV(&buf, []string{"only_one"}, m))

	path := filepath.Join(t.TempDir(), "out", "train.csv")
	require.NoError(t, dataset.WriteMatrixCSV(path, []string{"f0", "math_score"}, m))
	frame, err := dataset.ReadCSV(path)
	require.NoError(t, err)
	target, err := frame.Float64s("math_score")
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 72}, target)
}

func TestSchemaValidate(t *testing.T) {
	require.NoError(t, dataset.DefaultSchema().Validate())

	tests := []struct {
		name   string
		schema dataset.Schema
	}{
		{"empty target", dataset.Schema{Numerical: []string{"a"}}},
		{"duplicate", dataset.Schema{Numerical: []string{"a"}, Categorical: []string{"a"}, Target: "t"}},
		{"target is a feature", dataset.Schema{Numerical: []string{"t"}, Target: "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			assert.Equal(t, errors.KindSchema, errors.KindOf(err))
		})
	}
}

func TestSchemaSplit(t *testing.T) {
	schema := dataset.DefaultSchema()
	frame, err := dataset.ParseCSV(strings.NewReader(studentsCSV))
	require.NoError(t, err)

	features, target, err := schema.Split(frame)
	require.NoError(t, err)
	assert.Equal(t, []float64{72, 69, 47}, target)
	assert.False(t, features.Has("math_score"))
	assert.Equal(t, 7, len(features.Columns()))
	assert.Empty(t, schema.Remainder(frame))

	extra, err := dataset.NewFrame([]string{"math_score", "id"}, [][]string{{"1", "7"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, schema.Remainder(extra))
}

func TestSchemaSplitErrors(t *testing.T) {
	schema := dataset.DefaultSchema()

	noTarget, err := dataset.NewFrame([]string{"gender"}, [][]string{{"female"}})
	require.NoError(t, err)
	_, _, err = schema.Split(noTarget)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))

	missingValue, err := dataset.NewFrame([]string{"math_score"}, [][]string{{"50"}, {""}})
	require.NoError(t, err)
	_, _, err = schema.Split(missingValue)
	require.Error(t, err)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))
	assert.Contains(t, err.Error(), "row 2")

	text, err := dataset.NewFrame([]string{"math_score"}, [][]string{{"high"}})
	require.NoError(t, err)
	_, _, err = schema.Split(text)
	assert.Equal(t, errors.KindSchema, errors.KindOf(err))
}
